package app

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"sync"
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/saftindustries/sca/x/cash"
	"github.com/saftindustries/sca/x/escrow"
	"github.com/saftindustries/sca/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

const heightKey = "_internal:height"

// Confirmation identifies one accepted transaction.
type Confirmation [sha256.Size]byte

// NewConfirmation derives the confirmation of a transaction accepted at
// given height.
func NewConfirmation(height uint64, signBytes []byte) Confirmation {
	h := sha256.New()
	_ = binary.Write(h, binary.BigEndian, height)
	h.Write(signBytes)
	var c Confirmation
	copy(c[:], h.Sum(nil))
	return c
}

// String returns the base58 form of the confirmation.
func (c Confirmation) String() string {
	return base58.Encode(c[:])
}

// IsZero returns true for the zero confirmation.
func (c Confirmation) IsZero() bool {
	return c == Confirmation{}
}

// Receipt is returned for every accepted transaction.
type Receipt struct {
	Height       uint64
	Confirmation Confirmation
	Data         []byte
	Log          string
}

// Executor applies transactions one at a time against the ledger. A
// transaction is either applied completely or not at all.
type Executor struct {
	mu      sync.Mutex
	db      *store.DBStore
	bank    cash.Controller
	handler sca.Handler
	chainID string
	height  uint64
	clock   func() time.Time
	logger  log.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock sets the source of block times.
func WithClock(clock func() time.Time) Option {
	return func(e *Executor) { e.clock = clock }
}

// WithLogger sets the logger every transaction is logged with.
func WithLogger(logger log.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// NewExecutor returns an executor over db. On an empty database the genesis
// is applied first; otherwise the chain id of the genesis must match the
// stored one.
func NewExecutor(db *store.DBStore, gen Genesis, reg prometheus.Registerer, opts ...Option) (*Executor, error) {
	bank := cash.NewController()
	handler, err := Stack(bank, reg)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build handler stack")
	}
	e := &Executor{
		db:      db,
		bank:    bank,
		handler: handler,
		clock:   time.Now,
		logger:  sca.DefaultLogger,
	}
	for _, o := range opts {
		o(e)
	}

	stored, err := loadChainID(db)
	if err != nil {
		return nil, err
	}
	switch stored {
	case "":
		if err := e.initGenesis(gen); err != nil {
			return nil, errors.Wrap(err, "genesis")
		}
	case gen.ChainID:
	default:
		return nil, errors.Wrapf(errors.ErrInput, "database belongs to chain %q, not %q", stored, gen.ChainID)
	}
	e.chainID = gen.ChainID

	raw, err := db.Get([]byte(heightKey))
	if err != nil {
		return nil, errors.Wrap(err, "cannot read height")
	}
	if raw != nil {
		e.height = binary.BigEndian.Uint64(raw)
	}
	e.logger.Info("executor ready", "chain_id", e.chainID, "height", e.height)
	return e, nil
}

func (e *Executor) initGenesis(gen Genesis) error {
	cache := e.db.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	inits := ChainInitializers(cash.NewInitializer(e.bank))
	if err := inits.FromGenesis(gen.AppOptions, cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

// NewFromConfig opens the configured database and genesis file. A nil
// logger discards all output. The returned executor owns the database;
// release it with Close.
func NewFromConfig(cfg Config, logger log.Logger, reg prometheus.Registerer) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger, err := cfg.Logger(logger)
	if err != nil {
		return nil, err
	}
	gen := Genesis{ChainID: cfg.ChainID}
	if cfg.GenesisFile != "" {
		if gen, err = LoadGenesis(cfg.GenesisFile); err != nil {
			return nil, err
		}
		if gen.ChainID != cfg.ChainID {
			return nil, errors.Wrapf(errors.ErrInput, "genesis chain id %q does not match %q", gen.ChainID, cfg.ChainID)
		}
	}
	db, err := store.OpenDB(cfg.DB.Backend, cfg.DB.Name, cfg.DB.Dir)
	if err != nil {
		return nil, err
	}
	e, err := NewExecutor(db, gen, reg, WithLogger(logger))
	if err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

// Submit applies one transaction. Transactions are serialized; each one is
// checked against the state left by the previous.
func (e *Executor) Submit(ctx context.Context, tx *Tx) (*Receipt, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height + 1
	ctx = sca.WithChainID(ctx, e.chainID)
	ctx = sca.WithBlockTime(ctx, e.clock())
	ctx = sca.WithLogInfo(sca.WithLogger(ctx, e.logger),
		"height", height,
		"instruction", InstructionName(tx))

	// The transaction and the new height are committed in one batch.
	cache := e.db.CacheWrap()
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, height)
	if err := cache.Set([]byte(heightKey), raw); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "cannot save height")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	e.height = height

	return &Receipt{
		Height:       height,
		Confirmation: NewConfirmation(height, signBytes),
		Data:         res.Data,
		Log:          res.Log,
	}, nil
}

// ChainID returns the chain id signatures must be bound to.
func (e *Executor) ChainID() string {
	return e.chainID
}

// Height returns the number of accepted transactions.
func (e *Executor) Height() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

// Record returns the escrow record stored under handle.
func (e *Executor) Record(handle sca.Identity) (escrow.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := escrow.NewBucket().Get(e.db, handle)
	if err != nil {
		return escrow.Record{}, err
	}
	return *rec, nil
}

// Holdings returns the record under handle together with its vault
// balances.
func (e *Executor) Holdings(handle sca.Identity) (*escrow.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return escrow.Load(e.db, e.bank, handle)
}

// Balance returns the native token balance of id.
func (e *Executor) Balance(id sca.Identity) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bank.Balance(e.db, id)
}

// NextSequence returns the sequence the next signature of id must carry.
func (e *Executor) NextSequence(id sca.Identity) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sigs.NewBucket().Sequence(e.db, id)
}

// Close releases the database.
func (e *Executor) Close() {
	e.db.Close()
}
