package log

import (
	"path/filepath"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"github.com/shenzhen-arrom/kitties/config"
)

const (
	rotationTime int64 = 86400
	maxAge       int64 = 604800
)

var defaultFormatter = &logrus.TextFormatter{DisableColors: true}

// InitLogFile installs a hook that mirrors every entry into a rotated
// per-module log file under the configured log directory.
func InitLogFile(config *config.Config) {
	hook := newRegistryHook(config)
	logrus.AddHook(hook)
}

// SetLogLevel adjusts the global level; unknown names keep the default.
func SetLogLevel(level string) {
	if parsed, err := logrus.ParseLevel(level); err == nil {
		logrus.SetLevel(parsed)
	}
}

type RegistryHook struct {
	logPath string
	lock    *sync.Mutex
}

func newRegistryHook(config *config.Config) *RegistryHook {
	hook := &RegistryHook{lock: new(sync.Mutex)}
	hook.logPath = config.LogDir()
	return hook
}

// Write a log line to an io.Writer.
func (hook *RegistryHook) ioWrite(entry *logrus.Entry) error {
	module := "general"
	if data, ok := entry.Data["module"]; ok {
		module = data.(string)
	}

	logPath := filepath.Join(hook.logPath, module)

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d",
		rotatelogs.WithMaxAge(time.Duration(maxAge)*time.Second),
		rotatelogs.WithRotationTime(time.Duration(rotationTime)*time.Second),
	)
	if err != nil {
		return err
	}
	msg, err := defaultFormatter.Format(entry)
	if err != nil {
		logrus.Println("failed to generate string for entry:", err)
		return err
	}
	_, err = writer.Write(msg)
	return err
}

func (hook *RegistryHook) Fire(entry *logrus.Entry) error {
	hook.lock.Lock()
	defer hook.lock.Unlock()
	return hook.ioWrite(entry)
}

// Levels returns configured log levels.
func (hook *RegistryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
