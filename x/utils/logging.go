package utils

import (
	"context"
	"time"

	"github.com/saftindustries/sca"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ sca.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (*sca.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, tx, resLog, err)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx context.Context, start time.Time, tx sca.Tx, msg string, err error) {
	delta := time.Since(start)
	logger := sca.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if target := tx.GetTarget(); !target.IsZero() {
		logger = logger.With("target", target)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.Error(msg, "err", err)
	} else {
		logger.Info(msg)
	}
}
