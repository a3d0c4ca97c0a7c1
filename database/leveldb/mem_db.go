package leveldb

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	dbm "github.com/shenzhen-arrom/kitties/database/db"
)

func init() {
	dbm.RegisterDBCreator(dbm.MemDBBackendStr, func(name string, dir string) (dbm.DB, error) {
		return NewMemDB(), nil
	}, false)
}

// MemDB is a map-backed dbm.DB for tests and throwaway nodes.
type MemDB struct {
	mtx sync.Mutex
	db  map[string][]byte
}

func NewMemDB() *MemDB {
	return &MemDB{db: make(map[string][]byte)}
}

func (db *MemDB) Get(key []byte) []byte {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return cp(db.db[string(key)])
}

func (db *MemDB) Set(key []byte, value []byte) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.db[string(key)] = cp(value)
}

func (db *MemDB) SetSync(key []byte, value []byte) {
	db.Set(key, value)
}

func (db *MemDB) Delete(key []byte) {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	delete(db.db, string(key))
}

func (db *MemDB) DeleteSync(key []byte) {
	db.Delete(key)
}

func (db *MemDB) Close() {
	// nothing to release
}

func (db *MemDB) Print() {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	for key, value := range db.db {
		fmt.Printf("[%X]:\t[%X]\n", []byte(key), value)
	}
}

func (db *MemDB) Stats() map[string]string {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return map[string]string{"database.size": fmt.Sprintf("%d", len(db.db))}
}

func (db *MemDB) NewBatch() dbm.Batch {
	return &memBatch{db: db}
}

func (db *MemDB) Iterator() dbm.Iterator {
	return db.IteratorPrefix(nil)
}

func (db *MemDB) IteratorPrefix(prefix []byte) dbm.Iterator {
	db.mtx.Lock()
	defer db.mtx.Unlock()

	keys := make([]string, 0, len(db.db))
	for key := range db.db {
		if bytes.HasPrefix([]byte(key), prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, key := range keys {
		values[i] = cp(db.db[key])
	}
	return &memIterator{keys: keys, values: values, cursor: -1}
}

type memIterator struct {
	keys   []string
	values [][]byte
	cursor int
}

func (itr *memIterator) Next() bool {
	if itr.cursor+1 >= len(itr.keys) {
		return false
	}
	itr.cursor++
	return true
}

func (itr *memIterator) Key() []byte {
	return []byte(itr.keys[itr.cursor])
}

func (itr *memIterator) Value() []byte {
	return itr.values[itr.cursor]
}

func (itr *memIterator) Seek(key []byte) bool {
	for i, k := range itr.keys {
		if k >= string(key) {
			itr.cursor = i
			return true
		}
	}
	return false
}

func (itr *memIterator) Release() {}

func (itr *memIterator) Error() error { return nil }

type memOp struct {
	delete bool
	key    []byte
	value  []byte
}

type memBatch struct {
	db  *MemDB
	ops []memOp
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, memOp{key: cp(key), value: cp(value)})
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, memOp{delete: true, key: cp(key)})
}

func (b *memBatch) Write() {
	b.db.mtx.Lock()
	defer b.db.mtx.Unlock()

	for _, op := range b.ops {
		if op.delete {
			delete(b.db.db, string(op.key))
		} else {
			b.db.db[string(op.key)] = op.value
		}
	}
	b.ops = nil
}
