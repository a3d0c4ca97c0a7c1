// Package db defines the key-value and SQL storage interfaces used by
// the registry stores, with pluggable backends registered at init time.
package db

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

type DB interface {
	Get([]byte) []byte
	Set([]byte, []byte)
	SetSync([]byte, []byte)
	Delete([]byte)
	DeleteSync([]byte)
	Close()
	NewBatch() Batch
	Iterator() Iterator
	IteratorPrefix([]byte) Iterator

	// For debugging
	Print()
	Stats() map[string]string
}

type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write()
}

type Iterator interface {
	Next() bool

	Key() []byte
	Value() []byte
	Seek([]byte) bool

	Release()
	Error() error
}

type SQLDB interface {
	Name() string
	Db() *gorm.DB
}

const (
	LevelDBBackendStr   = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr = "goleveldb"
	MemDBBackendStr     = "memdb"
	SqliteDBBackendStr  = "sqlite"
	MySQLDBBackendStr   = "mysql"
)

type dbCreator func(name string, dir string) (DB, error)

var backends = map[string]dbCreator{}

func RegisterDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

func NewDB(name string, backend string, dir string) DB {
	creator, ok := backends[backend]
	if !ok {
		panic(fmt.Sprintf("unknown db backend %q", backend))
	}

	db, err := creator(name, dir)
	if err != nil {
		panic(fmt.Sprintf("error initializing DB: %v", err))
	}
	return db
}

type sqlDBCreator func(name string, dir string) (SQLDB, error)

var sqlBackends = map[string]sqlDBCreator{}

func RegisterSQLDBCreator(backend string, creator sqlDBCreator, force bool) {
	_, ok := sqlBackends[backend]
	if !force && ok {
		return
	}
	sqlBackends[backend] = creator
}

func NewSQLDB(name string, backend string, dir string) SQLDB {
	creator, ok := sqlBackends[backend]
	if !ok {
		panic(fmt.Sprintf("unknown sql db backend %q", backend))
	}

	db, err := creator(name, dir)
	if err != nil {
		panic(fmt.Sprintf("error initializing SQL DB: %v", err))
	}
	return db
}
