package sigs

import (
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	sca.Tx

	// GetSignBytes returns the canonical byte representation of the
	// signed content, without any signature.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of all signers.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of one identity over the sign bytes of a
// transaction, bound to the signer's sequence.
type StdSignature struct {
	Signer    sca.Identity `json:"signer"`
	Sequence  uint64       `json:"sequence"`
	Signature []byte       `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Signer.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
