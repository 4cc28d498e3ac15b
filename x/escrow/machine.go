package escrow

import (
	"time"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Env carries the executor data a transition may depend on.
type Env struct {
	// Now is the block time the instruction is applied at.
	Now time.Time
}

// Move is a balance transfer requested by a transition.
type Move struct {
	From   sca.Identity
	To     sca.Identity
	Amount uint64
}

// Outcome is the result of a successful transition: the record to save and
// the transfers to perform, in order.
type Outcome struct {
	Record Record
	Moves  []Move
}

// Apply computes the transition of the account under handle caused by signer
// submitting ins. The account is nil when no record exists under the handle.
//
// Apply is pure. It never modifies the account and returns either a complete
// outcome or an error.
func Apply(env Env, handle sca.Identity, account *Account, signer sca.Identity, ins Instruction) (*Outcome, error) {
	if m, ok := ins.(InitializeOperation); ok {
		if account != nil {
			return nil, errors.Wrap(errors.ErrPrecondition, "record already exists")
		}
		return initialize(env, signer, m)
	}

	if account == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "record %s", handle)
	}
	if account.Record.Status == StatusClosed {
		return nil, errors.Wrapf(errors.ErrClosed, "record %s", handle)
	}

	// Work on copies only.
	a := *account
	t := transition{handle: handle, acc: &a, rec: &a.Record, signer: signer}

	var err error
	switch m := ins.(type) {
	case RegisterBuyer:
		err = t.registerBuyer()
	case RegisterArbiter:
		err = t.registerArbiter()
	case ApproveArbiters:
		err = t.approve(m.Party)
	case BuyerDeposit:
		err = t.deposit()
	case BuyerRelease:
		err = t.release()
	case SellerRefund:
		err = t.refund()
	case StartDispute:
		err = t.startDispute()
	case SellerAddInfo:
		err = t.addInfo(PartySeller, m.Evidence)
	case BuyerAddInfo:
		err = t.addInfo(PartyBuyer, m.Evidence)
	case ArbiterVote:
		err = t.vote(m.For)
	case ParticipantClaim:
		err = t.claim()
	default:
		err = errors.Wrapf(errors.ErrHuman, "unsupported instruction %T", ins)
	}
	if err != nil {
		return nil, err
	}
	return &Outcome{Record: *t.rec, Moves: t.moves}, nil
}

func initialize(env Env, signer sca.Identity, m InitializeOperation) (*Outcome, error) {
	if signer.IsZero() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	if m.Value == 0 {
		return nil, errors.Wrap(errors.ErrInput, "value must be positive")
	}
	if !m.TokenVersion.Valid() {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported token version %d", m.TokenVersion)
	}
	if m.ItemRef.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "missing item reference")
	}
	var createdAt uint64
	if unix := env.Now.Unix(); unix > 0 {
		createdAt = uint64(unix)
	}
	return &Outcome{
		Record: Record{
			Status:       StatusOpened,
			CreatedAt:    createdAt,
			TokenVersion: m.TokenVersion,
			Value:        m.Value,
			Seller:       signer,
			ItemRef:      m.ItemRef,
		},
	}, nil
}

// transition mutates a private copy of an opened account.
type transition struct {
	handle sca.Identity
	acc    *Account
	rec    *Record
	signer sca.Identity
	moves  []Move
}

func (t *transition) move(from, to sca.Identity, amount uint64) {
	t.moves = append(t.moves, Move{From: from, To: to, Amount: amount})
}

func (t *transition) registerBuyer() error {
	if !t.rec.Buyer.IsZero() {
		return errors.Wrap(errors.ErrPrecondition, "buyer already registered")
	}
	if _, err := Require(t.rec, t.signer, RoleUnregistered); err != nil {
		return err
	}
	if t.signer.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	t.rec.Buyer = t.signer
	return nil
}

func (t *transition) registerArbiter() error {
	if t.rec.Buyer.IsZero() {
		return errors.Wrap(errors.ErrPrecondition, "buyer not registered")
	}
	n := t.rec.ArbitersRegistered()
	if n == ArbiterCount {
		return errors.Wrap(errors.ErrPrecondition, "all arbiters registered")
	}
	if _, err := Require(t.rec, t.signer, RoleUnregistered); err != nil {
		return err
	}
	if t.signer.IsZero() {
		return errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	t.rec.Arbiters[n] = t.signer
	return nil
}

func (t *transition) approve(p Party) error {
	if t.rec.ArbitersRegistered() != ArbiterCount {
		return errors.Wrap(errors.ErrPrecondition, "arbiters not registered")
	}
	if !t.acc.vaultsEmpty() {
		return errors.Wrap(errors.ErrPrecondition, "vault not empty")
	}
	switch p {
	case PartySeller:
		if _, err := Require(t.rec, t.signer, RoleSeller); err != nil {
			return err
		}
		if t.rec.SellerApproved {
			return errors.Wrap(errors.ErrPrecondition, "seller already approved")
		}
		t.rec.SellerApproved = true
	case PartyBuyer:
		if _, err := Require(t.rec, t.signer, RoleBuyer); err != nil {
			return err
		}
		if t.rec.BuyerApproved {
			return errors.Wrap(errors.ErrPrecondition, "buyer already approved")
		}
		t.rec.BuyerApproved = true
	default:
		return errors.Wrapf(errors.ErrInput, "invalid party %d", p)
	}
	return nil
}

func (t *transition) deposit() error {
	if !t.rec.SellerApproved || !t.rec.BuyerApproved {
		return errors.Wrap(errors.ErrPrecondition, "arbiters not approved by both parties")
	}
	if !t.acc.vaultsEmpty() {
		return errors.Wrap(errors.ErrPrecondition, "vault not empty")
	}
	if _, err := Require(t.rec, t.signer, RoleBuyer); err != nil {
		return err
	}
	t.move(t.rec.Buyer, HoldVault(t.handle), t.rec.Value)
	t.acc.Hold = t.rec.Value
	return nil
}

func (t *transition) requireFunded() error {
	if t.acc.Disputed() {
		return errors.Wrap(errors.ErrPrecondition, "under dispute")
	}
	if !t.acc.Funded() {
		return errors.Wrap(errors.ErrPrecondition, "not funded")
	}
	return nil
}

func (t *transition) release() error {
	if err := t.requireFunded(); err != nil {
		return err
	}
	if _, err := Require(t.rec, t.signer, RoleBuyer); err != nil {
		return err
	}
	t.payout(HoldVault(t.handle), t.rec.Seller)
	return nil
}

func (t *transition) refund() error {
	if err := t.requireFunded(); err != nil {
		return err
	}
	if _, err := Require(t.rec, t.signer, RoleSeller); err != nil {
		return err
	}
	t.payout(HoldVault(t.handle), t.rec.Buyer)
	return nil
}

// payout moves the deposit from the vault to the recipient and closes the
// record.
func (t *transition) payout(vault, to sca.Identity) {
	t.move(vault, to, t.rec.Value)
	t.acc.Hold, t.acc.Dispute = 0, 0
	t.rec.Status = StatusClosed
}

func (t *transition) startDispute() error {
	if err := t.requireFunded(); err != nil {
		return err
	}
	if _, err := Require(t.rec, t.signer, RoleSeller, RoleBuyer); err != nil {
		return err
	}
	t.move(HoldVault(t.handle), DisputeVault(t.handle), t.rec.Value)
	t.acc.Dispute, t.acc.Hold = t.rec.Value, 0
	return nil
}

func (t *transition) addInfo(p Party, ref sca.ContentRef) error {
	if !t.acc.Disputed() {
		return errors.Wrap(errors.ErrPrecondition, "not under dispute")
	}
	role := RoleBuyer
	if p == PartySeller {
		role = RoleSeller
	}
	if _, err := Require(t.rec, t.signer, role); err != nil {
		return err
	}
	if ref.IsZero() {
		return errors.Wrap(errors.ErrInput, "missing evidence reference")
	}
	if p == PartySeller {
		t.rec.SellerEvidence = ref
	} else {
		t.rec.BuyerEvidence = ref
	}
	return nil
}

func (t *transition) vote(p Party) error {
	if !p.Valid() {
		return errors.Wrapf(errors.ErrInput, "invalid party %d", p)
	}
	if !t.acc.Disputed() {
		return errors.Wrap(errors.ErrPrecondition, "not under dispute")
	}
	role, err := RequireArbiter(t.rec, t.signer)
	if err != nil {
		return err
	}
	i := role.ArbiterIndex()
	if t.rec.Votes[i] != VoteNone {
		return errors.Wrapf(errors.ErrPrecondition, "%s already voted", role)
	}
	t.rec.Votes[i] = p.Vote()
	return nil
}

func (t *transition) claim() error {
	if !t.acc.Disputed() {
		return errors.Wrap(errors.ErrPrecondition, "not under dispute")
	}
	winner, ok := t.rec.Majority()
	if !ok {
		return errors.Wrapf(errors.ErrPrecondition, "no majority with %d votes cast", t.rec.VotesCast())
	}
	to, role := t.rec.Buyer, RoleBuyer
	if winner == PartySeller {
		to, role = t.rec.Seller, RoleSeller
	}
	if _, err := Require(t.rec, t.signer, role); err != nil {
		return err
	}
	t.payout(DisputeVault(t.handle), to)
	return nil
}
