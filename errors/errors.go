// Package errors implements the error idiom used across the repo:
// sentinel root errors decorated with wrap prefixes and detail messages,
// with the original root always recoverable for comparison.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It is intended for declaring package-level sentinel errors.
func New(text string) error {
	return errors.New(text)
}

// wrapperError satisfies the error interface while carrying the
// root error and any accumulated detail messages.
type wrapperError struct {
	msg    string
	root   error
	detail []string
}

func (e wrapperError) Error() string {
	return e.msg
}

// Root returns the original error that was passed to Wrap or WithDetail,
// unwrapping any number of decoration layers. If err was never wrapped
// by this package, Root returns err itself.
func Root(err error) error {
	if wErr, ok := err.(wrapperError); ok {
		return wErr.root
	}
	return err
}

// wrap adds a context prefix to err's message, preserving the root.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}

	wErr, ok := err.(wrapperError)
	if !ok {
		wErr = wrapperError{msg: err.Error(), root: err}
	}
	if msg != "" {
		wErr.msg = msg + ": " + wErr.msg
	}
	return wErr
}

// Wrap adds each prefix in order to err's message. It returns nil if
// err is nil, so call sites can wrap unconditionally.
func Wrap(err error, prefix ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprint(prefix...))
}

// Wrapf is like Wrap with a format string.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return wrap(err, fmt.Sprintf(format, a...))
}

// WithDetail attaches a caller-facing detail message to err.
// Detail messages do not alter the error's main message.
func WithDetail(err error, text string) error {
	if err == nil {
		return nil
	}
	if text == "" {
		return err
	}

	wErr, ok := err.(wrapperError)
	if !ok {
		wErr = wrapperError{msg: err.Error(), root: err}
	}
	wErr.detail = append(wErr.detail, text)
	return wErr
}

// WithDetailf is like WithDetail with a format string.
func WithDetailf(err error, format string, v ...interface{}) error {
	return WithDetail(err, fmt.Sprintf(format, v...))
}

// Detail returns the detail messages attached to err, joined by "; ".
// If err has no details, Detail returns err's message.
func Detail(err error) string {
	if err == nil {
		return ""
	}

	wErr, ok := err.(wrapperError)
	if !ok || len(wErr.detail) == 0 {
		return err.Error()
	}
	return strings.Join(wErr.detail, "; ")
}
