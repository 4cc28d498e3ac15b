package escrow

import "github.com/saftindustries/sca"

// HoldVault returns the account holding the deposit of a funded operation.
// Nobody owns its key, so only this extension moves funds out of it.
func HoldVault(handle sca.Identity) sca.Identity {
	return sca.DeriveIdentity("escrow", "hold", handle[:])
}

// DisputeVault returns the account holding the deposit while it is under
// arbitration.
func DisputeVault(handle sca.Identity) sca.Identity {
	return sca.DeriveIdentity("escrow", "dispute", handle[:])
}
