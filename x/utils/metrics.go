package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// ResultOK is the result label of a successful transaction.
const ResultOK = "ok"

// Metrics is a decorator counting transactions and measuring how long they
// take to process, labelled by instruction name and result code.
type Metrics struct {
	name     func(sca.Tx) string
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ sca.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg. name
// returns the instruction label of a transaction.
func NewMetrics(reg prometheus.Registerer, name func(sca.Tx) string) (*Metrics, error) {
	m := &Metrics{
		name: name,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sca",
			Name:      "instructions_total",
			Help:      "Number of processed instructions.",
		}, []string{"instruction", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sca",
			Name:      "instruction_duration_seconds",
			Help:      "Time spent processing an instruction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"instruction"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return m, nil
}

// Deliver records the outcome of the rest of the stack.
func (m *Metrics) Deliver(ctx context.Context, store sca.KVStore, tx sca.Tx, next sca.Handler) (*sca.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)

	name := m.name(tx)
	result := ResultOK
	if err != nil {
		result = strconv.FormatUint(uint64(errors.Code(err)), 10)
	}
	m.total.WithLabelValues(name, result).Inc()
	m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return res, err
}
