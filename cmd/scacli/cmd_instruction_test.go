package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
	"github.com/saftindustries/sca/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := map[string]struct {
		args []string
		want escrow.Instruction
	}{
		"initialize": {
			args: []string{"-op", "initialize", "-value", "1500", "-item", "QmItem"},
			want: escrow.InitializeOperation{Value: 1500, ItemRef: sca.NewContentRef("QmItem")},
		},
		"approve as seller": {
			args: []string{"-op", "approve", "-party", "seller"},
			want: escrow.ApproveArbiters{Party: escrow.PartySeller},
		},
		"vote for buyer": {
			args: []string{"-op", "vote"},
			want: escrow.ArbiterVote{For: escrow.PartyBuyer},
		},
		"evidence": {
			args: []string{"-op", "buyer-add-info", "-evidence", "QmProof"},
			want: escrow.BuyerAddInfo{Evidence: sca.NewContentRef("QmProof")},
		},
		"claim": {
			args: []string{"-op", "claim"},
			want: escrow.ParticipantClaim{},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, cmdEncode(strings.NewReader(""), &out, tc.args))
			want := hex.EncodeToString(escrow.EncodeInstruction(tc.want))
			assert.Equal(t, want+"\n", out.String())
		})
	}
}

func TestEncodeEveryInstruction(t *testing.T) {
	seen := make(map[escrow.Opcode]bool)
	for _, name := range instructionNames() {
		var out bytes.Buffer
		require.NoError(t, cmdEncode(strings.NewReader(""), &out, []string{"-op", name}), name)
		raw, err := hex.DecodeString(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		seen[escrow.Opcode(raw[0])] = true
	}
	assert.Len(t, seen, 12)
}

func TestEncodeErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, cmdEncode(strings.NewReader(""), &out, []string{"-op", "transfer"}))
	assert.Error(t, cmdEncode(strings.NewReader(""), &out, []string{"-op", "vote", "-party", "arbiter"}))
	assert.Error(t, cmdEncode(strings.NewReader(""), &out, []string{"-op", "initialize", "-token", "256"}))
	assert.Empty(t, out.String())
}

func TestDecodeInstruction(t *testing.T) {
	var enc bytes.Buffer
	require.NoError(t, cmdEncode(strings.NewReader(""), &enc,
		[]string{"-op", "initialize", "-value", "42", "-item", "QmItem"}))

	var out bytes.Buffer
	require.NoError(t, cmdDecodeInstruction(&enc, &out, nil))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]interface{}{
		"instruction":   "InitializeOperation",
		"value":         float64(42),
		"token_version": "native",
		"item_ref":      "QmItem",
	}, got)

	out.Reset()
	require.NoError(t, cmdDecodeInstruction(strings.NewReader("0a01\n"), &out, nil))
	got = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]interface{}{
		"instruction": "ArbiterVote",
		"party":       "seller",
	}, got)
}

func TestDecodeInstructionErrors(t *testing.T) {
	cases := map[string]struct {
		input   string
		wantErr *errors.Error
	}{
		"not hex":        {input: "zz", wantErr: errors.ErrInput},
		"empty":          {input: "", wantErr: errors.ErrMalformed},
		"unknown opcode": {input: "ff", wantErr: errors.ErrMalformed},
		"short payload":  {input: "08aabb", wantErr: errors.ErrMalformed},
		"bad selector":   {input: "0a02", wantErr: errors.ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := cmdDecodeInstruction(strings.NewReader(tc.input), &out, nil)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.Empty(t, out.String())
		})
	}
}
