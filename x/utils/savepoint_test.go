package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		handler sca.Handler
		isError bool
		written [][]byte
		missing [][]byte
	}{
		"rollback on error": {
			handler: writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"commit on success": {
			handler: writeHandler{key: nk, value: nv},
			written: [][]byte{ok, nk},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			_, err := NewSavepoint().Deliver(context.Background(), kv, testTx{}, tc.handler)
			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

// nonCacheable hides the CacheWrap method of a store.
type nonCacheable struct {
	sca.KVStore
}

func TestSavepointWithoutCache(t *testing.T) {
	kv := store.MemStore()
	_, err := NewSavepoint().Deliver(context.Background(), nonCacheable{kv}, testTx{},
		writeHandler{key: []byte("k"), value: []byte("v"), err: fmt.Errorf("fail")})
	assert.Error(t, err)

	// Without a cache wrap the write cannot be rolled back.
	has, err := kv.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}
