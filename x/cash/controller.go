package cash

import (
	"encoding/binary"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

const balancePrefix = "cash:"

// Controller is the functionality needed by the escrow handler to move
// native tokens between accounts.
type Controller interface {
	// Balance returns the amount held by given account. A missing account
	// holds nothing.
	Balance(db sca.ReadOnlyKVStore, addr sca.Identity) (uint64, error)

	// MoveCoins moves the given amount from src to dest.
	// If src doesn't have sufficient coins, it fails.
	MoveCoins(db sca.KVStore, src, dest sca.Identity, amount uint64) error

	// IssueCoins adds the given amount to the destination account.
	IssueCoins(db sca.KVStore, dest sca.Identity, amount uint64) error
}

// BaseController is a simple implementation of Controller that stores each
// balance as an 8 byte little endian value.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{}
}

func balanceKey(addr sca.Identity) []byte {
	return append([]byte(balancePrefix), addr[:]...)
}

// Balance implements Controller.
func (BaseController) Balance(db sca.ReadOnlyKVStore, addr sca.Identity) (uint64, error) {
	raw, err := db.Get(balanceKey(addr))
	if err != nil {
		return 0, errors.Wrap(err, "cannot read balance")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrMalformed, "balance of %s is %d bytes", addr, len(raw))
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (c BaseController) setBalance(db sca.KVStore, addr sca.Identity, amount uint64) error {
	if amount == 0 {
		return db.Delete(balanceKey(addr))
	}
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, amount)
	return db.Set(balanceKey(addr), raw)
}

// MoveCoins implements Controller. Both balances are checked before any of
// them is written.
func (c BaseController) MoveCoins(db sca.KVStore, src, dest sca.Identity, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInput, "non-positive amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %d, need %d", src, have, amount)
	}
	recv, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if recv+amount < recv {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}

	if err := c.setBalance(db, src, have-amount); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}
	if err := c.setBalance(db, dest, recv+amount); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins implements Controller. Fails if it overflows the account.
func (c BaseController) IssueCoins(db sca.KVStore, dest sca.Identity, amount uint64) error {
	have, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	return c.setBalance(db, dest, have+amount)
}
