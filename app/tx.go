package app

import (
	"crypto/sha256"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/crypto"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/x/sigs"
)

// Tx is the envelope submitted to the executor: an encoded instruction, the
// handle of the record it targets and the signatures authorizing it.
type Tx struct {
	Target      sca.Identity         `json:"target"`
	Instruction []byte               `json:"instruction"`
	Signatures  []*sigs.StdSignature `json:"signatures,omitempty"`
}

var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction.
func NewTx(target sca.Identity, instruction []byte) *Tx {
	return &Tx{Target: target, Instruction: instruction}
}

// GetTarget implements sca.Tx.
func (tx *Tx) GetTarget() sca.Identity {
	return tx.Target
}

// GetInstruction implements sca.Tx.
func (tx *Tx) GetInstruction() []byte {
	return tx.Instruction
}

// GetSignatures implements sigs.SignedTx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the target followed by the instruction.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if len(tx.Instruction) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty instruction")
	}
	bz := make([]byte, 0, sca.IdentityLength+len(tx.Instruction))
	bz = append(bz, tx.Target[:]...)
	return append(bz, tx.Instruction...), nil
}

// Sign appends the signature of key for the given sequence.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq uint64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "cannot sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Hash returns the sha256 of the sign bytes.
func (tx *Tx) Hash() ([]byte, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(bz)
	return h[:], nil
}
