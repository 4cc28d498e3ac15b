/*
Package client signs escrow instructions with one participant key and
submits them to a ledger.
*/
package client

import (
	"context"
	"sync"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/app"
	"github.com/saftindustries/sca/crypto"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/x/escrow"
)

// Ledger is the executor a client talks to. *app.Executor implements it.
type Ledger interface {
	ChainID() string
	NextSequence(sca.Identity) (uint64, error)
	Submit(context.Context, *app.Tx) (*app.Receipt, error)
	Record(handle sca.Identity) (escrow.Record, error)
}

var _ Ledger = (*app.Executor)(nil)

// Client acts on escrow operations on behalf of the owner of a key.
type Client struct {
	ledger Ledger
	key    *crypto.PrivateKey

	// mu serializes signing so that concurrent calls do not reuse a
	// sequence.
	mu sync.Mutex
}

// New returns a client signing with key.
func New(ledger Ledger, key *crypto.PrivateKey) *Client {
	return &Client{ledger: ledger, key: key}
}

// Identity returns the identity the client acts as.
func (c *Client) Identity() sca.Identity {
	return c.key.Identity()
}

func (c *Client) submit(ctx context.Context, handle sca.Identity, ins escrow.Instruction) (*app.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq, err := c.ledger.NextSequence(c.key.Identity())
	if err != nil {
		return nil, errors.Wrap(err, "cannot read sequence")
	}
	tx := app.NewTx(handle, escrow.EncodeInstruction(ins))
	if err := tx.Sign(c.key, c.ledger.ChainID(), seq); err != nil {
		return nil, err
	}
	res, err := c.ledger.Submit(ctx, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", ins.Opcode())
	}
	return res, nil
}

func (c *Client) confirm(ctx context.Context, handle sca.Identity, ins escrow.Instruction) (app.Confirmation, error) {
	res, err := c.submit(ctx, handle, ins)
	if err != nil {
		return app.Confirmation{}, err
	}
	return res.Confirmation, nil
}

// Initialize opens a new operation with the client as seller.
func (c *Client) Initialize(ctx context.Context, value uint64, token escrow.TokenVersion, itemRef sca.ContentRef) (sca.Identity, app.Confirmation, error) {
	res, err := c.submit(ctx, sca.ZeroIdentity, escrow.InitializeOperation{
		Value:        value,
		TokenVersion: token,
		ItemRef:      itemRef,
	})
	if err != nil {
		return sca.ZeroIdentity, app.Confirmation{}, err
	}
	handle, err := sca.NewIdentity(res.Data)
	if err != nil {
		return sca.ZeroIdentity, app.Confirmation{}, errors.Wrap(err, "record handle")
	}
	return handle, res.Confirmation, nil
}

// RegisterBuyer joins the operation as buyer.
func (c *Client) RegisterBuyer(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.RegisterBuyer{})
}

// RegisterArbiter joins the operation as the next arbiter.
func (c *Client) RegisterArbiter(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.RegisterArbiter{})
}

// Approve approves the arbiter panel in the given capacity.
func (c *Client) Approve(ctx context.Context, handle sca.Identity, role escrow.Party) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.ApproveArbiters{Party: role})
}

// Deposit funds the operation.
func (c *Client) Deposit(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.BuyerDeposit{})
}

// Release pays the deposit to the seller.
func (c *Client) Release(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.BuyerRelease{})
}

// Refund pays the deposit back to the buyer.
func (c *Client) Refund(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.SellerRefund{})
}

// StartDispute puts the deposit under arbitration.
func (c *Client) StartDispute(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.StartDispute{})
}

// AddEvidence sets the evidence reference of the given party.
func (c *Client) AddEvidence(ctx context.Context, handle sca.Identity, role escrow.Party, ref sca.ContentRef) (app.Confirmation, error) {
	switch role {
	case escrow.PartySeller:
		return c.confirm(ctx, handle, escrow.SellerAddInfo{Evidence: ref})
	case escrow.PartyBuyer:
		return c.confirm(ctx, handle, escrow.BuyerAddInfo{Evidence: ref})
	default:
		return app.Confirmation{}, errors.Wrapf(errors.ErrInput, "invalid party %d", role)
	}
}

// Vote casts the client's arbiter vote.
func (c *Client) Vote(ctx context.Context, handle sca.Identity, choice escrow.Party) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.ArbiterVote{For: choice})
}

// Claim collects a deposit awarded by the arbiters.
func (c *Client) Claim(ctx context.Context, handle sca.Identity) (app.Confirmation, error) {
	return c.confirm(ctx, handle, escrow.ParticipantClaim{})
}

// ReadRecord returns the current record of an operation.
func (c *Client) ReadRecord(handle sca.Identity) (escrow.Record, error) {
	return c.ledger.Record(handle)
}
