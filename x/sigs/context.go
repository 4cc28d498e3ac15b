package sigs

import (
	"context"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx context.Context, signers []sca.Identity) context.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (Authenticate) GetSigners(ctx context.Context) []sca.Identity {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]sca.Identity)
	return val
}

// HasSigner returns true if addr signed the current Context.
func (a Authenticate) HasSigner(ctx context.Context, id sca.Identity) bool {
	for _, s := range a.GetSigners(ctx) {
		if id.Equals(s) {
			return true
		}
	}
	return false
}
