package escrow

import "fmt"

// State is the lifecycle position of an operation. It is derived from the
// record and the balances of its two vaults and never stored.
type State uint8

const (
	StateCreated State = iota
	StateBuyerRegistered
	StateArbitersRegistered
	StateApproved
	StateFunded
	StateDisputed
	StateVotesCast
	StateClosed
)

var stateNames = [...]string{
	StateCreated:            "created",
	StateBuyerRegistered:    "buyer_registered",
	StateArbitersRegistered: "arbiters_registered",
	StateApproved:           "approved",
	StateFunded:             "funded",
	StateDisputed:           "disputed",
	StateVotesCast:          "votes_cast",
	StateClosed:             "closed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Account is a record together with the balances of its vaults.
type Account struct {
	Record  Record
	Hold    uint64
	Dispute uint64
}

// approved reports whether the operation may hold funds: the buyer is
// registered and both parties approved the arbiter panel.
func (a *Account) approved() bool {
	r := &a.Record
	return !r.Buyer.IsZero() && r.SellerApproved && r.BuyerApproved && r.Value > 0
}

// Funded reports whether the deposit is waiting in the hold vault. Vault
// balances of an operation that could not have been funded are ignored.
func (a *Account) Funded() bool {
	return a.approved() && a.Hold == a.Record.Value && a.Dispute == 0
}

// Disputed reports whether the deposit is under arbitration.
func (a *Account) Disputed() bool {
	return a.approved() && a.Dispute == a.Record.Value && a.Hold == 0
}

// vaultsEmpty reports whether neither vault holds any coins.
func (a *Account) vaultsEmpty() bool {
	return a.Hold == 0 && a.Dispute == 0
}

// ArbitersRegistered returns how many arbiter slots are filled.
func (r *Record) ArbitersRegistered() int {
	var n int
	for _, a := range r.Arbiters {
		if !a.IsZero() {
			n++
		}
	}
	return n
}

// VotesCast returns how many arbiters voted.
func (r *Record) VotesCast() int {
	var n int
	for _, v := range r.Votes {
		if v != VoteNone {
			n++
		}
	}
	return n
}

// Majority returns the party at least two arbiters voted for.
func (r *Record) Majority() (Party, bool) {
	var buyer, seller int
	for _, v := range r.Votes {
		switch v {
		case VoteBuyer:
			buyer++
		case VoteSeller:
			seller++
		}
	}
	switch {
	case buyer >= 2:
		return PartyBuyer, true
	case seller >= 2:
		return PartySeller, true
	default:
		return 0, false
	}
}

// StateOf derives the lifecycle state of an account.
func StateOf(a *Account) State {
	rec := &a.Record
	switch {
	case rec.Status == StatusClosed:
		return StateClosed
	case a.Disputed() && rec.VotesCast() == ArbiterCount:
		return StateVotesCast
	case a.Disputed():
		return StateDisputed
	case a.Funded():
		return StateFunded
	case rec.SellerApproved && rec.BuyerApproved:
		return StateApproved
	case rec.ArbitersRegistered() == ArbiterCount:
		return StateArbitersRegistered
	case !rec.Buyer.IsZero():
		return StateBuyerRegistered
	default:
		return StateCreated
	}
}
