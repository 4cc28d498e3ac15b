/*
Package crypto provides the ed25519 keys participants sign instructions with.

A participant's identity is its raw 32 byte public key, so any identity
stored in an escrow record can be used directly to verify a signature.
*/
package crypto

import (
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"golang.org/x/crypto/ed25519"
)

// SeedSize is the size of a seed accepted by PrivateKeyFromSeed.
const SeedSize = ed25519.SeedSize

// PrivateKey signs messages on behalf of the identity it derives.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivateKey returns a random new private key.
func GenPrivateKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "generate ed25519 key")
	}
	return &PrivateKey{key: priv}, nil
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Seed returns the seed the key was derived from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// Identity returns the public key of this private key as an identity.
func (p *PrivateKey) Identity() sca.Identity {
	var id sca.Identity
	copy(id[:], p.key.Public().(ed25519.PublicKey))
	return id
}

// Verify verifies the signature was created with this message by the holder
// of the private key of given identity.
func Verify(signer sca.Identity, message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(signer[:]), message, sig)
}
