package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/crypto"
	"github.com/saftindustries/sca/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer identities (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db sca.KVStore, tx SignedTx, chainID string) ([]sca.Identity, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]sca.Identity, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes,
// check chain and updates the sequence in the store
func VerifySignature(db sca.KVStore, sig *StdSignature, signBytes []byte, chainID string) (sca.Identity, error) {
	if err := sig.Validate(); err != nil {
		return sca.ZeroIdentity, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return sca.ZeroIdentity, err
	}
	if !crypto.Verify(sig.Signer, toSign, sig.Signature) {
		return sca.ZeroIdentity, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := NewBucket().CheckAndIncrementSequence(db, sig.Signer, sig.Sequence); err != nil {
		return sca.ZeroIdentity, err
	}
	return sig.Signer, nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | sequence           | signBytes
4bytes  | uint8        | ascii string | uint64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq uint64) ([]byte, error) {
	if !sca.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = binary.BigEndian.AppendUint64(output, seq)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignTx creates a signature for the given tx
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq uint64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Signer:    signer.Identity(),
		Sequence:  seq,
		Signature: signer.Sign(toSign),
	}, nil
}
