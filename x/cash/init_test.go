package cash

import (
	"encoding/json"
	"testing"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitState(t *testing.T) {
	addr := sca.DeriveIdentity("test", "genesis", nil)
	bz, err := json.Marshal([]GenesisAccount{{Address: addr, Amount: 5000}})
	require.NoError(t, err)

	cases := map[string]struct {
		opts    sca.Options
		isError bool
		want    uint64
	}{
		"no prob if no data":  {opts: sca.Options{}, want: 0},
		"other extension key": {opts: sca.Options{"foo": []byte(`"bar"`)}, want: 0},
		"bad format":          {opts: sca.Options{"cash": []byte(`{"address": 1}`)}, isError: true},
		"missing address":     {opts: sca.Options{"cash": []byte(`[{"amount": 3}]`)}, isError: true},
		"bad address":         {opts: sca.Options{"cash": []byte(`[{"address": "0OIl", "amount": 3}]`)}, isError: true},
		"a real account":      {opts: sca.Options{"cash": bz}, want: 5000},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			err := NewInitializer(ctrl).FromGenesis(tc.opts, db)
			if tc.isError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := ctrl.Balance(db, addr)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
