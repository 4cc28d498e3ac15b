package sca

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/saftindustries/sca/errors"
)

// IdentityLength is the width in bytes of every identity.
const IdentityLength = 32

// Identity is a fixed width value naming either a participant (its public
// key) or a ledger account derived from other data.
//
// Identities are compared by their raw bytes only. The text form is base58.
type Identity [IdentityLength]byte

// ZeroIdentity is the unset identity value.
var ZeroIdentity Identity

// NewIdentity copies given bytes into an identity. It fails if the length is
// not exactly IdentityLength.
func NewIdentity(raw []byte) (Identity, error) {
	var id Identity
	if len(raw) != IdentityLength {
		return id, errors.Wrapf(errors.ErrInput, "identity must be %d bytes, got %d", IdentityLength, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// DeriveIdentity computes an identity for an account that is owned by an
// extension rather than by a key. The result is the hash of
//
//   sprintf("%s/%s/", extension, type) + data
func DeriveIdentity(ext, typ string, data []byte) Identity {
	h := sha256.New()
	fmt.Fprintf(h, "%s/%s/", ext, typ)
	h.Write(data)
	var id Identity
	copy(id[:], h.Sum(nil))
	return id
}

// ParseIdentity decodes the base58 text form of an identity.
func ParseIdentity(s string) (Identity, error) {
	raw := base58.Decode(s)
	if len(raw) == 0 && len(s) != 0 {
		return ZeroIdentity, errors.Wrapf(errors.ErrInput, "invalid base58 identity %q", s)
	}
	return NewIdentity(raw)
}

// IsZero returns true if the identity is not set.
func (i Identity) IsZero() bool {
	return i == ZeroIdentity
}

// Equals checks if two identities are the same.
func (i Identity) Equals(o Identity) bool {
	return bytes.Equal(i[:], o[:])
}

// Bytes returns a copy of the raw identity value.
func (i Identity) Bytes() []byte {
	b := make([]byte, IdentityLength)
	copy(b, i[:])
	return b
}

// String returns the base58 text form.
func (i Identity) String() string {
	return base58.Encode(i[:])
}

func (i Identity) MarshalJSON() ([]byte, error) {
	var s string
	if !i.IsZero() {
		s = i.String()
	}
	return json.Marshal(s)
}

func (i *Identity) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if s == "" {
		*i = ZeroIdentity
		return nil
	}
	id, err := ParseIdentity(s)
	if err != nil {
		return err
	}
	*i = id
	return nil
}
