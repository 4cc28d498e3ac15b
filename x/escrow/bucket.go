package escrow

import (
	"encoding/binary"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

const (
	recordPrefix = "escrow:"
	seqKey       = "_seq:escrow"
)

// Bucket persists records under their handle.
type Bucket struct{}

// NewBucket returns a bucket for escrow records.
func NewBucket() Bucket {
	return Bucket{}
}

func recordKey(handle sca.Identity) []byte {
	return append([]byte(recordPrefix), handle[:]...)
}

// Get loads the record stored under handle. It returns ErrNotFound if there
// is none.
func (Bucket) Get(db sca.ReadOnlyKVStore, handle sca.Identity) (*Record, error) {
	raw, err := db.Get(recordKey(handle))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read record")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "record %s", handle)
	}
	var rec Record
	if err := rec.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "record %s", handle)
	}
	return &rec, nil
}

// Save writes the record under handle.
func (Bucket) Save(db sca.KVStore, handle sca.Identity, rec *Record) error {
	if err := db.Set(recordKey(handle), rec.Marshal()); err != nil {
		return errors.Wrap(err, "cannot save record")
	}
	return nil
}

// NextHandle allocates a fresh handle. Handles are derived from a counter so
// that they cannot be picked by the caller.
func (Bucket) NextHandle(db sca.KVStore) (sca.Identity, error) {
	raw, err := db.Get([]byte(seqKey))
	if err != nil {
		return sca.ZeroIdentity, errors.Wrap(err, "cannot read sequence")
	}
	var n uint64
	if raw != nil {
		if len(raw) != 8 {
			return sca.ZeroIdentity, errors.Wrapf(errors.ErrMalformed, "sequence is %d bytes", len(raw))
		}
		n = binary.BigEndian.Uint64(raw)
	}
	n++
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, n)
	if err := db.Set([]byte(seqKey), next); err != nil {
		return sca.ZeroIdentity, errors.Wrap(err, "cannot save sequence")
	}
	return sca.DeriveIdentity("escrow", "seq", next), nil
}
