package cash

import (
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// The address is the base58 text form of an identity.
type GenesisAccount struct {
	Address sca.Identity `json:"address"`
	Amount  uint64       `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	ctrl Controller
}

var _ sca.Initializer = Initializer{}

// NewInitializer returns an initializer issuing genesis funds through given
// controller.
func NewInitializer(ctrl Controller) Initializer {
	return Initializer{ctrl: ctrl}
}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i Initializer) FromGenesis(opts sca.Options, kv sca.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(err, "cannot read cash genesis")
	}
	for n, acct := range accts {
		if acct.Address.IsZero() {
			return errors.Wrapf(errors.ErrInput, "genesis account %d has no address", n)
		}
		if err := i.ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "genesis account %s", acct.Address)
		}
	}
	return nil
}
