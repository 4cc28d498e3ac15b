package x

import (
	"context"

	"github.com/saftindustries/sca"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all identities that signed the current
	// transaction.
	GetSigners(context.Context) []sca.Identity
	// HasSigner checks if the given identity signed the current
	// transaction.
	HasSigner(context.Context, sca.Identity) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx context.Context) []sca.Identity {
	var res []sca.Identity
	for _, impl := range m.impls {
		res = append(res, impl.GetSigners(ctx)...)
	}
	return res
}

// HasSigner returns true iff any Authenticator support this
func (m MultiAuth) HasSigner(ctx context.Context, id sca.Identity) bool {
	for _, impl := range m.impls {
		if impl.HasSigner(ctx, id) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise the zero identity.
func MainSigner(ctx context.Context, auth Authenticator) sca.Identity {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return sca.ZeroIdentity
	}
	return signers[0]
}

// StaticAuth authenticates a fixed set of identities regardless of the
// context. It is meant for tests and tooling.
type StaticAuth struct {
	Signers []sca.Identity
}

var _ Authenticator = StaticAuth{}

// GetSigners returns the configured identities.
func (a StaticAuth) GetSigners(context.Context) []sca.Identity {
	return a.Signers
}

// HasSigner returns true if id is one of the configured identities.
func (a StaticAuth) HasSigner(_ context.Context, id sca.Identity) bool {
	for _, s := range a.Signers {
		if s.Equals(id) {
			return true
		}
	}
	return false
}
