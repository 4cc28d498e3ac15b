package store

import (
	"testing"

	"github.com/saftindustries/sca/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// countingDB records how the store writes to the database.
type countingDB struct {
	dbm.DB
	syncWrites int
	batches    int
	failWrite  bool
}

func (c *countingDB) SetSync(key, value []byte) {
	c.syncWrites++
	c.DB.SetSync(key, value)
}

func (c *countingDB) DeleteSync(key []byte) {
	c.syncWrites++
	c.DB.DeleteSync(key)
}

func (c *countingDB) NewBatch() dbm.Batch {
	c.batches++
	b := c.DB.NewBatch()
	if c.failWrite {
		return failingBatch{b}
	}
	return b
}

type failingBatch struct {
	dbm.Batch
}

func (failingBatch) WriteSync() {
	panic("disk full")
}

func TestDBCacheWrapWritesOneBatch(t *testing.T) {
	db := &countingDB{DB: dbm.NewMemDB()}
	db.DB.Set([]byte("old"), []byte("x"))
	s := NewDBStore(db)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("old")))

	inner := cache.CacheWrap()
	require.NoError(t, inner.Set([]byte("b"), []byte("2")))
	require.NoError(t, inner.Write())
	assert.Nil(t, db.DB.Get([]byte("b")))

	require.NoError(t, cache.Write())

	assert.Equal(t, 0, db.syncWrites)
	assert.Equal(t, 1, db.batches)
	assert.Equal(t, []byte("1"), db.DB.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.DB.Get([]byte("b")))
	assert.False(t, db.DB.Has([]byte("old")))
}

func TestDBCacheWrapFailedWriteKeepsNothing(t *testing.T) {
	db := &countingDB{DB: dbm.NewMemDB(), failWrite: true}
	s := NewDBStore(db)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))

	err := cache.Write()
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	assert.False(t, db.DB.Has([]byte("a")))
	assert.False(t, db.DB.Has([]byte("b")))
}

func TestNonAtomicBatch(t *testing.T) {
	out := MemStore()
	require.NoError(t, out.Set([]byte("gone"), []byte("x")))

	b := NewNonAtomicBatch(out)
	require.NoError(t, b.Set([]byte("k"), []byte("v1")))
	require.NoError(t, b.Delete([]byte("gone")))
	require.NoError(t, b.Set([]byte("k"), []byte("v2")))

	has, err := out.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, b.Write())
	got, err := out.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
	has, err = out.Has([]byte("gone"))
	require.NoError(t, err)
	assert.False(t, has)

	// Written operations are not applied twice.
	require.NoError(t, out.Set([]byte("k"), []byte("v3")))
	require.NoError(t, b.Write())
	got, err = out.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), got)
}
