package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/app"
	"github.com/saftindustries/sca/crypto"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/store"
	"github.com/saftindustries/sca/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	seller := sca.DeriveIdentity("test", "key", []byte("seller"))
	rec := escrow.Record{
		Status:    escrow.StatusOpened,
		CreatedAt: 1600000000,
		Value:     900,
		Seller:    seller,
		ItemRef:   sca.NewContentRef("QmItem"),
		Votes:     [escrow.ArbiterCount]escrow.Vote{escrow.VoteSeller},
	}
	input := strings.NewReader(hex.EncodeToString(rec.Marshal()))

	var out bytes.Buffer
	require.NoError(t, cmdDecodeRecord(input, &out, nil))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "opened", got["status"])
	assert.Equal(t, float64(1600000000), got["created_at"])
	assert.Equal(t, "native", got["token_version"])
	assert.Equal(t, float64(900), got["value"])
	assert.Equal(t, seller.String(), got["seller"])
	assert.Equal(t, "", got["buyer"])
	assert.Equal(t, "QmItem", got["item_ref"])
	assert.Equal(t, []interface{}{"seller", "none", "none"}, got["votes"])
}

func TestDecodeRecordErrors(t *testing.T) {
	var out bytes.Buffer
	err := cmdDecodeRecord(strings.NewReader("00ff"), &out, nil)
	assert.True(t, errors.ErrMalformed.Is(err), "got %+v", err)

	raw := make([]byte, escrow.RecordSize)
	raw[0] = 7
	err = cmdDecodeRecord(strings.NewReader(hex.EncodeToString(raw)), &out, nil)
	assert.True(t, errors.ErrMalformed.Is(err), "got %+v", err)
	assert.Empty(t, out.String())
}

func TestViewRecord(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.DB.Backend = store.BackendGoLevelDB
	cfg.DB.Dir = dir
	configPath := filepath.Join(dir, "sca.toml")
	require.NoError(t, app.WriteConfig(configPath, cfg))

	seed := make([]byte, crypto.SeedSize)
	seed[0] = 9
	seller, err := crypto.PrivateKeyFromSeed(seed)
	require.NoError(t, err)

	exec, err := app.NewFromConfig(cfg, nil, nil)
	require.NoError(t, err)
	tx := app.NewTx(sca.ZeroIdentity, escrow.EncodeInstruction(escrow.InitializeOperation{
		Value:   250,
		ItemRef: sca.NewContentRef("QmItem"),
	}))
	require.NoError(t, tx.Sign(seller, exec.ChainID(), 0))
	res, err := exec.Submit(context.Background(), tx)
	require.NoError(t, err)
	handle, err := sca.NewIdentity(res.Data)
	require.NoError(t, err)
	exec.Close()

	var out bytes.Buffer
	require.NoError(t, cmdViewRecord(strings.NewReader(""), &out,
		[]string{"-config", configPath, "-handle", handle.String()}))

	var got struct {
		Handle  sca.Identity           `json:"handle"`
		State   string                 `json:"state"`
		Hold    uint64                 `json:"hold"`
		Dispute uint64                 `json:"dispute"`
		Record  map[string]interface{} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, handle, got.Handle)
	assert.Equal(t, escrow.StateCreated.String(), got.State)
	assert.Equal(t, uint64(0), got.Hold)
	assert.Equal(t, seller.Identity().String(), got.Record["seller"])
	assert.Equal(t, float64(250), got.Record["value"])

	out.Reset()
	missing := sca.DeriveIdentity("escrow", "seq", []byte("none"))
	err = cmdViewRecord(strings.NewReader(""), &out,
		[]string{"-config", configPath, "-handle", missing.String()})
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}
