package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newStatesServer serves findstates requests with the given pages. Page is
// selected by the presence of the start key.
func newStatesServer(t *testing.T, root util.Uint256, contract util.Uint160, pages []result.FindStates) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "findstates", req.Method)
		require.GreaterOrEqual(t, len(req.Params), 3)

		var rootStr, contractStr string
		require.NoError(t, json.Unmarshal(req.Params[0], &rootStr))
		require.NoError(t, json.Unmarshal(req.Params[1], &contractStr))
		require.Equal(t, root.StringLE(), rootStr)
		require.Equal(t, contract.StringLE(), contractStr)

		page := pages[0]
		if len(req.Params) > 3 {
			var start []byte
			require.NoError(t, json.Unmarshal(req.Params[3], &start))
			require.Equal(t, pages[0].Results[len(pages[0].Results)-1].Key, start)
			page = pages[1]
		}

		res, err := json.Marshal(page)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(res),
		})
	}))
}

func TestIterateContractStorage(t *testing.T) {
	root := util.Uint256{1, 2, 3}
	contract := util.Uint160{4, 5, 6}

	pages := []result.FindStates{
		{
			Results: []result.KeyValue{
				{Key: []byte("nb1"), Value: []byte{1}},
				{Key: []byte("nb2"), Value: []byte{2}},
			},
			Truncated: true,
		},
		{
			Results: []result.KeyValue{
				{Key: []byte("ns"), Value: []byte{3}},
			},
		},
	}

	srv := newStatesServer(t, root, contract, pages)
	t.Cleanup(srv.Close)

	c, err := rpcclient.New(context.Background(), srv.URL, rpcclient.Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	b := &remoteBlockchain{rpc: c, stateRoot: root}

	var keys []string
	err = b.iterateContractStorage(contract, func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"nb1", "nb2", "ns"}, keys)

	t.Run("handler error", func(t *testing.T) {
		errStop := errors.New("stop")

		var n int
		err := b.iterateContractStorage(contract, func(key, value []byte) error {
			n++
			return errStop
		})
		require.ErrorIs(t, err, errStop)
		require.Equal(t, 1, n)
	})
}
