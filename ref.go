package sca

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/saftindustries/sca/errors"
)

// ContentRefLength is the width in bytes of a content reference.
const ContentRefLength = 46

// ContentRef is a fixed width reference to content stored outside of the
// ledger, usually the text of a content identifier.
//
// The referenced bytes are kept exactly as given. The meaningful payload is a
// prefix, trailing zero bytes are padding.
type ContentRef [ContentRefLength]byte

// NewContentRef returns a reference holding given text, truncated or zero
// padded to ContentRefLength.
func NewContentRef(s string) ContentRef {
	var r ContentRef
	copy(r[:], s)
	return r
}

// IsZero returns true if the reference is not set.
func (r ContentRef) IsZero() bool {
	return r == ContentRef{}
}

// String returns the reference text with trailing padding removed.
func (r ContentRef) String() string {
	return string(bytes.TrimRight(r[:], "\x00"))
}

// hexRefPrefix marks the JSON form of a reference that is not valid UTF-8.
// The hex form is always longer than ContentRefLength, so it cannot be
// mistaken for reference text.
const hexRefPrefix = "hex:"

// MarshalJSON returns the reference text, or the hex encoding of all bytes
// prefixed with "hex:" when the text is not valid UTF-8.
func (r ContentRef) MarshalJSON() ([]byte, error) {
	s := r.String()
	if !utf8.ValidString(s) {
		s = hexRefPrefix + hex.EncodeToString(r[:])
	}
	return json.Marshal(s)
}

func (r *ContentRef) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if strings.HasPrefix(s, hexRefPrefix) && len(s) > ContentRefLength {
		b, err := hex.DecodeString(s[len(hexRefPrefix):])
		if err != nil || len(b) != ContentRefLength {
			return errors.Wrap(errors.ErrInput, "invalid hex reference")
		}
		copy(r[:], b)
		return nil
	}
	if len(s) > ContentRefLength {
		return errors.Wrapf(errors.ErrInput, "reference longer than %d bytes", ContentRefLength)
	}
	*r = NewContentRef(s)
	return nil
}
