package sca

import (
	"encoding/json"
	"testing"

	"github.com/saftindustries/sca/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityText(t *testing.T) {
	var id Identity
	for i := range id {
		id[i] = byte(i + 1)
	}

	parsed, err := ParseIdentity(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.True(t, parsed.Equals(id))
	assert.False(t, parsed.IsZero())
	assert.True(t, ZeroIdentity.IsZero())
}

func TestParseIdentityErrors(t *testing.T) {
	cases := map[string]string{
		"not base58":   "0OIl",
		"too short":    "3mJr7AoUXx2Wqd",
		"empty string": "",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIdentity(input)
			require.Error(t, err)
			assert.True(t, errors.ErrInput.Is(err))
		})
	}
}

func TestNewIdentity(t *testing.T) {
	_, err := NewIdentity(make([]byte, 31))
	assert.True(t, errors.ErrInput.Is(err))

	raw := make([]byte, IdentityLength)
	raw[0] = 7
	id, err := NewIdentity(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())
}

func TestDeriveIdentity(t *testing.T) {
	a := DeriveIdentity("escrow", "hold", []byte{1})
	b := DeriveIdentity("escrow", "dispute", []byte{1})
	c := DeriveIdentity("escrow", "hold", []byte{1})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

func TestIdentityJSON(t *testing.T) {
	id := DeriveIdentity("test", "json", nil)
	raw, err := json.Marshal(id)
	require.NoError(t, err)

	var got Identity
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, id, got)

	raw, err = json.Marshal(ZeroIdentity)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.IsZero())
}
