package sigs

import (
	"encoding/binary"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// BucketName is where we store the sequences
const BucketName = "sigs"

// maxSequenceValue is the greatest sequence a client can safely represent
// as a javascript number.
const maxSequenceValue = (1 << 53) - 1

// Bucket stores the next expected sequence of every signer.
type Bucket struct{}

// NewBucket returns the sequence bucket.
func NewBucket() Bucket {
	return Bucket{}
}

func sequenceKey(id sca.Identity) []byte {
	return append([]byte(BucketName+":"), id[:]...)
}

// Sequence returns the sequence the next signature of id must carry. A
// signer that never signed starts at zero.
func (Bucket) Sequence(db sca.ReadOnlyKVStore, id sca.Identity) (uint64, error) {
	raw, err := db.Get(sequenceKey(id))
	if err != nil {
		return 0, errors.Wrap(err, "cannot read sequence")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrMalformed, "sequence of %s is %d bytes", id, len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (b Bucket) CheckAndIncrementSequence(db sca.KVStore, id sca.Identity, expected uint64) error {
	current, err := b.Sequence(db, id)
	if err != nil {
		return err
	}
	if current != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", current, expected)
	}
	next := current + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, next)
	if err := db.Set(sequenceKey(id), raw); err != nil {
		return errors.Wrap(err, "cannot save sequence")
	}
	return nil
}
