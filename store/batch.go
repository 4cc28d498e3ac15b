package store

import (
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// dbBatch adapts a tendermint batch. Either all of its operations reach the
// database or none does.
type dbBatch struct {
	b dbm.Batch
}

var _ sca.Batch = (*dbBatch)(nil)

func (d *dbBatch) Set(key, value []byte) error {
	d.b.Set(key, value)
	return nil
}

func (d *dbBatch) Delete(key []byte) error {
	d.b.Delete(key)
	return nil
}

// Write flushes the batch with fsync and releases it. A batch must not be
// used after Write.
func (d *dbBatch) Write() (err error) {
	// tendermint batches panic on a failed write.
	defer errors.Recover(&err)
	defer d.b.Close()
	d.b.WriteSync()
	return nil
}

type opKind int32

const (
	setKind opKind = iota + 1
	delKind
)

// Op is either set or delete
type Op struct {
	kind  opKind
	key   []byte
	value []byte // only for set
}

// Apply runs the operation against out.
func (o Op) Apply(out sca.SetDeleter) error {
	switch o.kind {
	case setKind:
		return out.Set(o.key, o.value)
	case delKind:
		return out.Delete(o.key)
	default:
		return errors.Wrapf(errors.ErrHuman, "unknown op kind %d", o.kind)
	}
}

// NonAtomicBatch just piles up ops and executes them later on the underlying
// store. Only use it when out is an in-memory store, such as a parent cache
// wrap.
type NonAtomicBatch struct {
	out sca.SetDeleter
	ops []Op
}

var _ sca.Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written to out.
func NewNonAtomicBatch(out sca.SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set adds a set operation to the batch
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{kind: setKind, key: key, value: value})
	return nil
}

// Delete adds a delete operation to the batch
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{kind: delKind, key: key})
	return nil
}

// Write applies all operations in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	return nil
}

