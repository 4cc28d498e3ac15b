package sca

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestChainID(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, "", GetChainID(bg))

	ctx := WithChainID(bg, "escrow-test")
	assert.Equal(t, "escrow-test", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "another-chain") })
	assert.Panics(t, func() { WithChainID(bg, "bad") })
}

func TestLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	logger := log.NewNopLogger()
	ctx := WithLogger(bg, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "module", "escrow")
	assert.NotNil(t, GetLogger(ctx))
}

func TestBlockTime(t *testing.T) {
	_, ok := BlockTime(context.Background())
	assert.False(t, ok)

	now := time.Unix(1600000000, 0)
	got, ok := BlockTime(WithBlockTime(context.Background(), now))
	assert.True(t, ok)
	assert.Equal(t, now, got)
}
