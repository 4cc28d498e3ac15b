package app

import (
	"context"
	"reflect"

	"github.com/saftindustries/sca"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []sca.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler,
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  utils.NewSavepoint(),
	  sigs.NewDecorator(),
	).WithHandler(
	  escrow.NewHandler(sigs.Authenticate{}, cash.NewController()),
	)
*/
func ChainDecorators(chain ...sca.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...sca.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := make([]sca.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, chain...)
	return Decorators{newChain}
}

// cutoffNil will in-place remove all nil values from given slice.
func cutoffNil(ds []sca.Decorator) []sca.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h sca.Handler) sca.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
type step struct {
	d    sca.Decorator
	next sca.Handler
}

var _ sca.Handler = step{}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx) (*sca.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
