// Package sqldb registers the gorm-backed SQL database creators.
package sqldb

import (
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	dbm "github.com/shenzhen-arrom/kitties/database/db"
)

func init() {
	dbm.RegisterSQLDBCreator(dbm.SqliteDBBackendStr, newSqliteDB, false)
	dbm.RegisterSQLDBCreator(dbm.MySQLDBBackendStr, newMySQLDB, false)
}

type sqlDB struct {
	name string
	db   *gorm.DB
}

func (s *sqlDB) Name() string {
	return s.name
}

func (s *sqlDB) Db() *gorm.DB {
	return s.db
}

func newSqliteDB(name string, dir string) (dbm.SQLDB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := gorm.Open("sqlite3", filepath.Join(dir, name+".db"))
	if err != nil {
		return nil, err
	}
	return &sqlDB{name: name, db: db}, nil
}

// newMySQLDB opens a MySQL connection; name carries the DSN and dir is
// unused.
func newMySQLDB(name string, dir string) (dbm.SQLDB, error) {
	db, err := gorm.Open("mysql", name)
	if err != nil {
		return nil, err
	}
	return &sqlDB{name: name, db: db}, nil
}
