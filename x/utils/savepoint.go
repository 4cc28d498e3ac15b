package utils

import (
	"context"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ sca.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver runs the rest of the stack on a cache wrap of the store. The wrap
// is written only when no error is returned.
func (s Savepoint) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (*sca.DeliverResult, error) {
	cstore, ok := store.(sca.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
