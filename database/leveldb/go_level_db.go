package leveldb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	dbm "github.com/shenzhen-arrom/kitties/database/db"
)

func init() {
	creator := func(name string, dir string) (dbm.DB, error) {
		return NewGoLevelDB(name, dir)
	}
	dbm.RegisterDBCreator(dbm.LevelDBBackendStr, creator, false)
	dbm.RegisterDBCreator(dbm.GoLevelDBBackendStr, creator, false)
}

// GoLevelDB wraps a goleveldb database as a dbm.DB.
type GoLevelDB struct {
	db *leveldb.DB
}

func NewGoLevelDB(name string, dir string) (*GoLevelDB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dir, name+".db")
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

func (db *GoLevelDB) Get(key []byte) []byte {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil
		}
		panic(err)
	}
	return res
}

func (db *GoLevelDB) Set(key []byte, value []byte) {
	if err := db.db.Put(key, value, nil); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) SetSync(key []byte, value []byte) {
	if err := db.db.Put(key, value, &opt.WriteOptions{Sync: true}); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) Delete(key []byte) {
	if err := db.db.Delete(key, nil); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) DeleteSync(key []byte) {
	if err := db.db.Delete(key, &opt.WriteOptions{Sync: true}); err != nil {
		panic(err)
	}
}

func (db *GoLevelDB) Close() {
	db.db.Close()
}

func (db *GoLevelDB) Print() {
	itr := db.db.NewIterator(nil, nil)
	defer itr.Release()
	for itr.Next() {
		fmt.Printf("[%X]:\t[%X]\n", itr.Key(), itr.Value())
	}
}

func (db *GoLevelDB) Stats() map[string]string {
	keys := []string{
		"leveldb.num-files-at-level0",
		"leveldb.stats",
		"leveldb.sstables",
		"leveldb.blockpool",
		"leveldb.cachedblock",
		"leveldb.openedtables",
	}

	stats := make(map[string]string)
	for _, key := range keys {
		if str, err := db.db.GetProperty(key); err == nil {
			stats[key] = str
		}
	}
	return stats
}

func (db *GoLevelDB) NewBatch() dbm.Batch {
	return &goLevelDBBatch{db: db, batch: new(leveldb.Batch)}
}

func (db *GoLevelDB) Iterator() dbm.Iterator {
	return &goLevelDBIterator{source: db.db.NewIterator(nil, nil)}
}

func (db *GoLevelDB) IteratorPrefix(prefix []byte) dbm.Iterator {
	return &goLevelDBIterator{source: db.db.NewIterator(util.BytesPrefix(prefix), nil)}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
}

func (b *goLevelDBBatch) Set(key, value []byte) {
	b.batch.Put(key, value)
}

func (b *goLevelDBBatch) Delete(key []byte) {
	b.batch.Delete(key)
}

func (b *goLevelDBBatch) Write() {
	if err := b.db.db.Write(b.batch, nil); err != nil {
		panic(err)
	}
}

type goLevelDBIterator struct {
	source iterator.Iterator
}

func (itr *goLevelDBIterator) Next() bool {
	return itr.source.Next()
}

func (itr *goLevelDBIterator) Key() []byte {
	return cp(itr.source.Key())
}

func (itr *goLevelDBIterator) Value() []byte {
	return cp(itr.source.Value())
}

func (itr *goLevelDBIterator) Seek(key []byte) bool {
	return itr.source.Seek(key)
}

func (itr *goLevelDBIterator) Release() {
	itr.source.Release()
}

func (itr *goLevelDBIterator) Error() error {
	return itr.source.Error()
}

func cp(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
