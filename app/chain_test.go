package app

import (
	"context"
	"testing"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	c3 := &countingDecorator{}
	h := &countingHandler{}
	var missing *countingDecorator

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		missing,
		panicAtDecorator{target: 8},
		c3,
	).WithHandler(h)

	bg := context.Background()

	// make some calls, make sure it is fine
	_, err := stack.Deliver(bg, nil, testTx{target: 1})
	assert.NoError(t, err)
	_, err = stack.Deliver(bg, nil, testTx{target: 4})
	assert.NoError(t, err)

	// decorators are counted double, once in, once out
	assert.Equal(t, 4, c1.count)
	assert.Equal(t, 4, c2.count)
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.count)

	// now, let's trigger a panic
	_, err = stack.Deliver(bg, nil, testTx{target: 8})
	assert.Error(t, err)

	assert.Equal(t, 6, c1.count)
	// note that c2 is called in, but not out
	assert.Equal(t, 5, c2.count)
	// and that in doesn't make it to c3 due to panic
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.count)
}

//---------------- helpers --------

type testTx struct {
	target byte
}

func (tx testTx) GetTarget() sca.Identity { return sca.Identity{tx.target} }
func (tx testTx) GetInstruction() []byte  { return nil }

type countingDecorator struct {
	count int
}

func (d *countingDecorator) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (*sca.DeliverResult, error) {
	d.count++
	res, err := next.Deliver(ctx, store, tx)
	d.count++
	return res, err
}

type countingHandler struct {
	count int
}

func (h *countingHandler) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx) (*sca.DeliverResult, error) {
	h.count++
	return &sca.DeliverResult{}, nil
}

// panicAtDecorator panics when the first target byte matches.
type panicAtDecorator struct {
	target byte
}

func (p panicAtDecorator) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (*sca.DeliverResult, error) {
	if tx.GetTarget()[0] == p.target {
		panic("boom")
	}
	return next.Deliver(ctx, store, tx)
}
