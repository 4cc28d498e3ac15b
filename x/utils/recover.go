package utils

import (
	"context"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ sca.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (_ *sca.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
