package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/saftindustries/sca/x"
	"github.com/saftindustries/sca/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTx struct {
	target sca.Identity
	ins    []byte
}

func (tx testTx) GetTarget() sca.Identity { return tx.target }
func (tx testTx) GetInstruction() []byte  { return tx.ins }

type handlerFixture struct {
	t    *testing.T
	db   *store.DBStore
	bank cash.Controller
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	db := store.MemStore()
	bank := cash.NewController()
	require.NoError(t, bank.IssueCoins(db, buyer, 2000))
	return &handlerFixture{t: t, db: db, bank: bank}
}

// deliver runs the instruction in a cache wrap that is only written on
// success, the way the executor does.
func (f *handlerFixture) deliver(signer, target sca.Identity, ins Instruction) (sca.Identity, error) {
	h := NewHandler(x.StaticAuth{Signers: []sca.Identity{signer}}, f.bank)
	ctx := sca.WithBlockTime(context.Background(), time.Unix(1700000000, 0))

	cache := f.db.CacheWrap()
	res, err := h.Deliver(ctx, cache, testTx{target: target, ins: EncodeInstruction(ins)})
	if err != nil {
		cache.Discard()
		return sca.ZeroIdentity, err
	}
	require.NoError(f.t, cache.Write())
	handle, err := sca.NewIdentity(res.Data)
	require.NoError(f.t, err)
	return handle, nil
}

func (f *handlerFixture) must(signer, target sca.Identity, ins Instruction) sca.Identity {
	f.t.Helper()
	handle, err := f.deliver(signer, target, ins)
	require.NoError(f.t, err, "%T", ins)
	return handle
}

func (f *handlerFixture) balance(id sca.Identity) uint64 {
	v, err := f.bank.Balance(f.db, id)
	require.NoError(f.t, err)
	return v
}

func TestHandlerLifecycle(t *testing.T) {
	f := newHandlerFixture(t)

	h := f.must(seller, sca.ZeroIdentity, InitializeOperation{Value: 1500, ItemRef: itemRef})
	assert.False(t, h.IsZero())
	f.must(buyer, h, RegisterBuyer{})
	for _, a := range []sca.Identity{arbiter1, arbiter2, arbiter3} {
		assert.Equal(t, h, f.must(a, h, RegisterArbiter{}))
	}
	f.must(seller, h, ApproveArbiters{Party: PartySeller})
	f.must(buyer, h, ApproveArbiters{Party: PartyBuyer})
	f.must(buyer, h, BuyerDeposit{})

	acc, err := Load(f.db, f.bank, h)
	require.NoError(t, err)
	assert.Equal(t, StateFunded, StateOf(acc))
	assert.Equal(t, uint64(1700000000), acc.Record.CreatedAt)
	assert.Equal(t, uint64(500), f.balance(buyer))
	assert.Equal(t, uint64(1500), f.balance(HoldVault(h)))

	f.must(buyer, h, BuyerRelease{})
	assert.Equal(t, uint64(1500), f.balance(seller))
	assert.Equal(t, uint64(0), f.balance(HoldVault(h)))

	acc, err = Load(f.db, f.bank, h)
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, acc.Record.Status)
}

func TestHandlerPrefundedVault(t *testing.T) {
	f := newHandlerFixture(t)
	next := sca.DeriveIdentity("escrow", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1})
	require.NoError(t, f.bank.IssueCoins(f.db, HoldVault(next), 1000))

	h := f.must(seller, sca.ZeroIdentity, InitializeOperation{Value: 1000, ItemRef: itemRef})
	require.Equal(t, next, h)

	_, err := f.deliver(seller, h, SellerRefund{})
	assert.True(t, errors.ErrPrecondition.Is(err), "got %+v", err)

	acc, err := Load(f.db, f.bank, h)
	require.NoError(t, err)
	assert.Equal(t, StatusOpened, acc.Record.Status)
	assert.Equal(t, StateCreated, StateOf(acc))
	assert.Equal(t, uint64(1000), f.balance(HoldVault(h)))
	assert.Equal(t, uint64(0), f.balance(sca.ZeroIdentity))
}

func TestHandlerHandlesAreUnique(t *testing.T) {
	f := newHandlerFixture(t)
	a := f.must(seller, sca.ZeroIdentity, InitializeOperation{Value: 1, ItemRef: itemRef})
	b := f.must(seller, sca.ZeroIdentity, InitializeOperation{Value: 1, ItemRef: itemRef})
	assert.NotEqual(t, a, b)
}

func TestHandlerErrors(t *testing.T) {
	f := newHandlerFixture(t)
	h := f.must(seller, sca.ZeroIdentity, InitializeOperation{Value: 5000, ItemRef: itemRef})

	_, err := f.deliver(buyer, stranger, RegisterBuyer{})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	_, err = f.deliver(seller, h, InitializeOperation{Value: 1, ItemRef: itemRef})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)

	cache := f.db.CacheWrap()
	_, err = NewHandler(x.StaticAuth{}, f.bank).Deliver(context.Background(), cache, testTx{target: h, ins: []byte{42}})
	assert.True(t, errors.ErrMalformed.Is(err), "got %+v", err)

	// The buyer holds less than the operation value.
	f.must(buyer, h, RegisterBuyer{})
	for _, a := range []sca.Identity{arbiter1, arbiter2, arbiter3} {
		f.must(a, h, RegisterArbiter{})
	}
	f.must(seller, h, ApproveArbiters{Party: PartySeller})
	f.must(buyer, h, ApproveArbiters{Party: PartyBuyer})

	before, err := f.db.Get(recordKey(h))
	require.NoError(t, err)
	_, err = f.deliver(buyer, h, BuyerDeposit{})
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)
	after, err := f.db.Get(recordKey(h))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, uint64(2000), f.balance(buyer))
}

func TestBucketCorruptRecord(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, db.Set(recordKey(testHandle), []byte("short")))
	_, err := NewBucket().Get(db, testHandle)
	assert.True(t, errors.ErrMalformed.Is(err))
}
