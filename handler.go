package sca

import (
	"context"
	"encoding/json"
)

// Tx represents one signed request to the executor: an encoded instruction
// and the record it targets.
type Tx interface {
	// GetTarget returns the handle of the record the instruction is
	// applied to. It is zero for instructions creating a new record.
	GetTarget() Identity

	// GetInstruction returns the encoded instruction.
	GetInstruction() []byte
}

// DeliverResult captures any non-error result of a handler.
type DeliverResult struct {
	// Data is a machine parsable return value, like the handle of a
	// created record.
	Data []byte
	// Log is human readable info for the logs.
	Log string
}

// Handler is a core engine that can process a few specific instructions.
//
// Deliver either succeeds or returns an error. The executor guarantees that
// no write of a failed Deliver call is ever committed.
type Handler interface {
	Deliver(ctx context.Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or logging, to many Handlers
type Decorator interface {
	Deliver(ctx context.Context, store KVStore, tx Tx, next Handler) (*DeliverResult, error)
}

// Options are the genesis options.
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
