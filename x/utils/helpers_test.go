package utils

import (
	"context"

	"github.com/saftindustries/sca"
)

type testTx struct {
	target sca.Identity
	ins    []byte
}

func (tx testTx) GetTarget() sca.Identity { return tx.target }
func (tx testTx) GetInstruction() []byte  { return tx.ins }

// writeHandler writes key/value and then returns err.
type writeHandler struct {
	key, value []byte
	err        error
}

var _ sca.Handler = writeHandler{}

func (h writeHandler) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx) (*sca.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &sca.DeliverResult{Log: "written"}, nil
}

type panicHandler struct{}

var _ sca.Handler = panicHandler{}

func (panicHandler) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx) (*sca.DeliverResult, error) {
	panic("deliver panic")
}
