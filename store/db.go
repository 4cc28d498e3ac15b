package store

import (
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Backends supported by OpenDB.
const (
	BackendMemory    = "memdb"
	BackendGoLevelDB = "goleveldb"
)

// DBStore exposes a tendermint database as a CacheableKVStore. It holds the
// committed ledger state; writes are expected to go through a cache wrap.
type DBStore struct {
	db dbm.DB
}

var _ sca.CacheableKVStore = (*DBStore)(nil)

// NewDBStore wraps given database.
func NewDBStore(db dbm.DB) *DBStore {
	return &DBStore{db: db}
}

// MemStore returns an in-memory store, useful for tests.
// There is no persistence here....
func MemStore() *DBStore {
	return NewDBStore(dbm.NewMemDB())
}

// OpenDB opens (or creates) a database of given backend named name in the
// dir directory.
func OpenDB(backend, name, dir string) (_ *DBStore, err error) {
	switch backend {
	case BackendMemory:
		return MemStore(), nil
	case BackendGoLevelDB:
		// dbm.NewDB panics if the database cannot be opened.
		defer errors.Recover(&err)
		db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
		return NewDBStore(db), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unsupported database backend %q", backend)
	}
}

// Get returns nil iff key doesn't exist.
func (s *DBStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key), nil
}

// Has checks if a key exists.
func (s *DBStore) Has(key []byte) (bool, error) {
	return s.db.Has(key), nil
}

// Set writes the value synchronously.
func (s *DBStore) Set(key, value []byte) error {
	s.db.SetSync(key, value)
	return nil
}

// Delete removes the key synchronously.
func (s *DBStore) Delete(key []byte) error {
	s.db.DeleteSync(key)
	return nil
}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (s *DBStore) CacheWrap() sca.KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// NewBatch returns a batch that is written to the database atomically and
// synchronously.
func (s *DBStore) NewBatch() sca.Batch {
	return &dbBatch{b: s.db.NewBatch()}
}

// Close releases the database.
func (s *DBStore) Close() {
	s.db.Close()
}
