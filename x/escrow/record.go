package escrow

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// RecordSize is the width in bytes of an encoded Record.
//
//   status(1) createdAt(8) tokenVersion(1) value(8) seller(32) buyer(32)
//   itemRef(46) arbiter1..3(3*32) sellerApproved(1) buyerApproved(1)
//   sellerEvidence(46) buyerEvidence(46) vote1..3(3*1)
const RecordSize = 1 + 8 + 1 + 8 + 32 + 32 + 46 + 3*32 + 1 + 1 + 46 + 46 + 3*1

// ArbiterCount is the size of the arbiter panel.
const ArbiterCount = 3

// Status is the lifecycle flag of a record.
type Status uint8

const (
	StatusClosed Status = 0
	StatusOpened Status = 1
)

// Valid reports whether the status value is within the supported range.
func (s Status) Valid() bool {
	return s == StatusClosed || s == StatusOpened
}

func (s Status) String() string {
	switch s {
	case StatusClosed:
		return "closed"
	case StatusOpened:
		return "opened"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// TokenVersion tags the kind of token an operation is funded with.
type TokenVersion uint8

const (
	// TokenNative is the native ledger token.
	TokenNative TokenVersion = 0
)

// Valid reports whether the token version is supported.
func (v TokenVersion) Valid() bool {
	return v == TokenNative
}

func (v TokenVersion) String() string {
	if v == TokenNative {
		return "native"
	}
	return fmt.Sprintf("TokenVersion(%d)", uint8(v))
}

func (v TokenVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Vote is the choice an arbiter made.
type Vote uint8

const (
	VoteNone   Vote = 0
	VoteBuyer  Vote = 1
	VoteSeller Vote = 2
)

// Valid reports whether the vote value is within the supported range.
func (v Vote) Valid() bool {
	return v <= VoteSeller
}

func (v Vote) String() string {
	switch v {
	case VoteNone:
		return "none"
	case VoteBuyer:
		return "buyer"
	case VoteSeller:
		return "seller"
	default:
		return fmt.Sprintf("Vote(%d)", uint8(v))
	}
}

func (v Vote) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Record is the persistent state of one escrow operation.
type Record struct {
	Status       Status         `json:"status"`
	CreatedAt    uint64         `json:"created_at"`
	TokenVersion TokenVersion   `json:"token_version"`
	Value        uint64         `json:"value"`
	Seller       sca.Identity   `json:"seller"`
	Buyer        sca.Identity   `json:"buyer"`
	ItemRef      sca.ContentRef `json:"item_ref"`

	Arbiters [ArbiterCount]sca.Identity `json:"arbiters"`

	SellerApproved bool `json:"seller_approved"`
	BuyerApproved  bool `json:"buyer_approved"`

	SellerEvidence sca.ContentRef     `json:"seller_evidence"`
	BuyerEvidence  sca.ContentRef     `json:"buyer_evidence"`
	Votes          [ArbiterCount]Vote `json:"votes"`
}

// Marshal encodes the record into exactly RecordSize bytes. Fields are
// written in declaration order, integers little endian.
func (r *Record) Marshal() []byte {
	b := make([]byte, 0, RecordSize)
	b = append(b, byte(r.Status))
	b = binary.LittleEndian.AppendUint64(b, r.CreatedAt)
	b = append(b, byte(r.TokenVersion))
	b = binary.LittleEndian.AppendUint64(b, r.Value)
	b = append(b, r.Seller[:]...)
	b = append(b, r.Buyer[:]...)
	b = append(b, r.ItemRef[:]...)
	for _, a := range r.Arbiters {
		b = append(b, a[:]...)
	}
	b = append(b, boolByte(r.SellerApproved), boolByte(r.BuyerApproved))
	b = append(b, r.SellerEvidence[:]...)
	b = append(b, r.BuyerEvidence[:]...)
	for _, v := range r.Votes {
		b = append(b, byte(v))
	}
	return b
}

// Unmarshal decodes a record. The buffer must be exactly RecordSize bytes and
// every enum and boolean byte must be in range. On failure r is not modified.
func (r *Record) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrMalformed, "record must be %d bytes, got %d", RecordSize, len(raw))
	}
	var (
		rec Record
		rd  = reader{buf: raw}
		err error
	)
	rec.Status = Status(rd.byte())
	if !rec.Status.Valid() {
		return errors.Wrapf(errors.ErrMalformed, "invalid status %d", rec.Status)
	}
	rec.CreatedAt = rd.uint64()
	rec.TokenVersion = TokenVersion(rd.byte())
	if !rec.TokenVersion.Valid() {
		return errors.Wrapf(errors.ErrMalformed, "invalid token version %d", rec.TokenVersion)
	}
	rec.Value = rd.uint64()
	rd.identity(&rec.Seller)
	rd.identity(&rec.Buyer)
	rd.ref(&rec.ItemRef)
	for i := range rec.Arbiters {
		rd.identity(&rec.Arbiters[i])
	}
	if rec.SellerApproved, err = rd.bool(); err != nil {
		return errors.Wrap(err, "seller approved")
	}
	if rec.BuyerApproved, err = rd.bool(); err != nil {
		return errors.Wrap(err, "buyer approved")
	}
	rd.ref(&rec.SellerEvidence)
	rd.ref(&rec.BuyerEvidence)
	for i := range rec.Votes {
		rec.Votes[i] = Vote(rd.byte())
		if !rec.Votes[i].Valid() {
			return errors.Wrapf(errors.ErrMalformed, "invalid vote %d of arbiter %d", rec.Votes[i], i+1)
		}
	}
	*r = rec
	return nil
}

// DecodeRecord is a convenience wrapper around Unmarshal.
func DecodeRecord(raw []byte) (Record, error) {
	var r Record
	err := r.Unmarshal(raw)
	return r, err
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// reader consumes a buffer whose length was already validated.
type reader struct {
	buf []byte
	pos int
}

func (rd *reader) byte() byte {
	b := rd.buf[rd.pos]
	rd.pos++
	return b
}

func (rd *reader) uint64() uint64 {
	v := binary.LittleEndian.Uint64(rd.buf[rd.pos:])
	rd.pos += 8
	return v
}

func (rd *reader) bool() (bool, error) {
	switch b := rd.byte(); b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(errors.ErrMalformed, "invalid boolean %d", b)
	}
}

func (rd *reader) identity(id *sca.Identity) {
	rd.pos += copy(id[:], rd.buf[rd.pos:])
}

func (rd *reader) ref(r *sca.ContentRef) {
	rd.pos += copy(r[:], rd.buf[rd.pos:])
}
