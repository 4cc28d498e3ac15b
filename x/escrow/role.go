package escrow

import (
	"fmt"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Role is the capacity a signer holds within one record.
type Role uint8

const (
	RoleUnregistered Role = iota
	RoleSeller
	RoleBuyer
	RoleArbiter1
	RoleArbiter2
	RoleArbiter3
)

func (r Role) String() string {
	switch r {
	case RoleUnregistered:
		return "unregistered"
	case RoleSeller:
		return "seller"
	case RoleBuyer:
		return "buyer"
	case RoleArbiter1, RoleArbiter2, RoleArbiter3:
		return fmt.Sprintf("arbiter%d", r.ArbiterIndex()+1)
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// IsArbiter reports whether the role is one of the arbiter slots.
func (r Role) IsArbiter() bool {
	return r >= RoleArbiter1 && r <= RoleArbiter3
}

// ArbiterIndex returns the zero based slot of an arbiter role, or -1.
func (r Role) ArbiterIndex() int {
	if !r.IsArbiter() {
		return -1
	}
	return int(r - RoleArbiter1)
}

// Resolve maps the signer onto the role it holds in the record. Slots are
// checked in seller, buyer, arbiter order and the zero identity never matches
// an empty slot.
func Resolve(rec *Record, signer sca.Identity) Role {
	if signer.IsZero() {
		return RoleUnregistered
	}
	switch {
	case signer.Equals(rec.Seller):
		return RoleSeller
	case signer.Equals(rec.Buyer):
		return RoleBuyer
	}
	for i, a := range rec.Arbiters {
		if signer.Equals(a) {
			return RoleArbiter1 + Role(i)
		}
	}
	return RoleUnregistered
}

// Require resolves the signer and fails with ErrUnauthorized unless it holds
// one of the allowed roles.
func Require(rec *Record, signer sca.Identity, allowed ...Role) (Role, error) {
	role := Resolve(rec, signer)
	for _, a := range allowed {
		if a == role {
			return role, nil
		}
	}
	return role, errors.Wrapf(errors.ErrUnauthorized, "%s is not allowed", role)
}

// RequireArbiter is Require for any of the three arbiter slots.
func RequireArbiter(rec *Record, signer sca.Identity) (Role, error) {
	return Require(rec, signer, RoleArbiter1, RoleArbiter2, RoleArbiter3)
}
