package utils

import (
	"context"
	"testing"

	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	var h panicHandler
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, testTx{}) })

	// Recovery wrapped handler returns an error.
	_, err := r.Deliver(ctx, s, testTx{}, h)
	assert.True(t, errors.ErrPanic.Is(err))
}
