package app

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Config holds the executor settings read from a TOML file.
type Config struct {
	ChainID     string   `toml:"chain_id"`
	GenesisFile string   `toml:"genesis_file"`
	LogLevel    string   `toml:"log_level"`
	DB          DBConfig `toml:"db"`
}

// DBConfig selects the ledger database.
type DBConfig struct {
	Backend string `toml:"backend"`
	Name    string `toml:"name"`
	Dir     string `toml:"dir"`
}

// DefaultConfig returns an in-memory configuration.
func DefaultConfig() Config {
	return Config{
		ChainID:  "sca-local",
		LogLevel: "info",
		DB: DBConfig{
			Backend: store.BackendMemory,
			Name:    "ledger",
		},
	}
}

// LoadConfig reads the configuration file at path. Fields missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		return cfg, errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Wrapf(errors.ErrInput, "unknown config key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if !sca.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", c.ChainID)
	}
	if _, err := log.AllowLevel(strings.ToLower(c.LogLevel)); err != nil {
		return errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	switch c.DB.Backend {
	case store.BackendMemory:
	case store.BackendGoLevelDB:
		if c.DB.Name == "" {
			return errors.Wrap(errors.ErrInput, "database name required")
		}
	default:
		return errors.Wrapf(errors.ErrInput, "unsupported database backend %q", c.DB.Backend)
	}
	return nil
}

// Logger wraps logger in a filter at the configured level.
func (c Config) Logger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// WriteConfig stores the configuration as TOML at path.
func WriteConfig(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create config file")
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(err, "cannot encode config")
	}
	return nil
}
