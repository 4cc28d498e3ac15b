package escrow

import (
	"context"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/x"
	"github.com/saftindustries/sca/x/cash"
)

// Handler executes escrow instructions against the store. Balance moves
// requested by a transition are performed through the cash controller.
type Handler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ sca.Handler = Handler{}

// NewHandler returns a handler using given authenticator and bank.
func NewHandler(auth x.Authenticator, bank cash.Controller) Handler {
	return Handler{auth: auth, bucket: NewBucket(), bank: bank}
}

// Deliver decodes the instruction, applies it to the targeted record and
// persists the outcome. The result data holds the record handle.
func (h Handler) Deliver(ctx context.Context, db sca.KVStore, tx sca.Tx) (*sca.DeliverResult, error) {
	ins, err := DecodeInstruction(tx.GetInstruction())
	if err != nil {
		return nil, errors.Wrap(err, "decode instruction")
	}
	signer := x.MainSigner(ctx, h.auth)
	now, _ := sca.BlockTime(ctx)

	var (
		handle = tx.GetTarget()
		acc    *Account
	)
	if _, ok := ins.(InitializeOperation); ok {
		if !handle.IsZero() {
			return nil, errors.Wrap(errors.ErrInput, "initialize must not target a record")
		}
		if handle, err = h.bucket.NextHandle(db); err != nil {
			return nil, err
		}
	} else {
		if acc, err = Load(db, h.bank, handle); err != nil {
			return nil, err
		}
	}

	out, err := Apply(Env{Now: now}, handle, acc, signer, ins)
	if err != nil {
		return nil, err
	}
	for _, m := range out.Moves {
		if err := h.bank.MoveCoins(db, m.From, m.To, m.Amount); err != nil {
			return nil, errors.Wrapf(err, "move %d from %s to %s", m.Amount, m.From, m.To)
		}
	}
	if err := h.bucket.Save(db, handle, &out.Record); err != nil {
		return nil, err
	}

	sca.GetLogger(ctx).Debug("escrow instruction applied",
		"handle", handle, "instruction", ins.Opcode(), "status", out.Record.Status)
	return &sca.DeliverResult{Data: handle.Bytes(), Log: ins.Opcode().String()}, nil
}

// Load reads the record stored under handle together with the balances of
// its vaults.
func Load(db sca.ReadOnlyKVStore, bank cash.Controller, handle sca.Identity) (*Account, error) {
	rec, err := NewBucket().Get(db, handle)
	if err != nil {
		return nil, err
	}
	hold, err := bank.Balance(db, HoldVault(handle))
	if err != nil {
		return nil, errors.Wrap(err, "hold vault")
	}
	dispute, err := bank.Balance(db, DisputeVault(handle))
	if err != nil {
		return nil, errors.Wrap(err, "dispute vault")
	}
	return &Account{Record: *rec, Hold: hold, Dispute: dispute}, nil
}
