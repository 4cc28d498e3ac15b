package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}

	cases := map[string]struct {
		path    string
		want    Config
		wantErr *errors.Error
	}{
		"full": {
			path: write("full.toml", `
chain_id = "escrow-test"
genesis_file = "/tmp/genesis.json"
log_level = "debug"

[db]
backend = "goleveldb"
name = "ledger"
dir = "/var/lib/sca"
`),
			want: Config{
				ChainID:     "escrow-test",
				GenesisFile: "/tmp/genesis.json",
				LogLevel:    "debug",
				DB:          DBConfig{Backend: store.BackendGoLevelDB, Name: "ledger", Dir: "/var/lib/sca"},
			},
		},
		"defaults kept": {
			path: write("partial.toml", `chain_id = "other-chain"`),
			want: Config{
				ChainID:  "other-chain",
				LogLevel: "info",
				DB:       DBConfig{Backend: store.BackendMemory, Name: "ledger"},
			},
		},
		"unknown key": {
			path:    write("unknown.toml", `chain = "escrow-test"`),
			wantErr: errors.ErrInput,
		},
		"bad chain id": {
			path:    write("chain.toml", `chain_id = "no"`),
			wantErr: errors.ErrInput,
		},
		"bad backend": {
			path:    write("backend.toml", "[db]\nbackend = \"bolt\""),
			wantErr: errors.ErrInput,
		},
		"bad level": {
			path:    write("level.toml", `log_level = "loud"`),
			wantErr: errors.ErrInput,
		},
		"invalid toml": {
			path:    write("invalid.toml", `chain_id = `),
			wantErr: errors.ErrInput,
		},
		"missing file": {
			path:    filepath.Join(dir, "nope.toml"),
			wantErr: errors.ErrNotFound,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(tc.path)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg)
		})
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.ChainID = "written-chain"
	require.NoError(t, WriteConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestConfigLogger(t *testing.T) {
	cfg := DefaultConfig()
	logger, err := cfg.Logger(log.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.LogLevel = "verbose"
	_, err = cfg.Logger(log.NewNopLogger())
	assert.True(t, errors.ErrInput.Is(err))
}
