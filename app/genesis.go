package app

import (
	"encoding/json"
	"os"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Genesis file format
type Genesis struct {
	ChainID    string      `json:"chain_id"`
	AppOptions sca.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(bytes, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

//------ init state -----

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...sca.Initializer) sca.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []sca.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts sca.Options, kv sca.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

//------- storing chainID ---------

const chainIDKey = "_internal:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(kv sca.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "cannot read chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv sca.KVStore, chainID string) error {
	if !sca.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	has, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "cannot read chain id")
	}
	if has {
		return errors.Wrap(errors.ErrPrecondition, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
