package mio

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}
func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	return nil, nil
}
func (t *testInv) TerminateSession(uuid.UUID) error {
	return nil
}

func checkpointItem(index, value int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(index),
		stackitem.Make(value),
	})
}

func TestParseHistory(t *testing.T) {
	h, err := ParseHistory(nil)
	require.NoError(t, err)
	require.Empty(t, h)
	require.Equal(t, int64(0), h.Current().Int64())
	require.Equal(t, int64(0), h.ValueAt(100).Int64())

	h, err = ParseHistory([]stackitem.Item{
		checkpointItem(3, 10),
		checkpointItem(7, 25),
		checkpointItem(12, 0),
	})
	require.NoError(t, err)
	require.Len(t, h, 3)

	for _, tc := range []struct {
		index    uint32
		expected int64
	}{
		{0, 0},
		{2, 0},
		{3, 10},
		{6, 10},
		{7, 25},
		{11, 25},
		{12, 0},
		{1000, 0},
	} {
		require.Equal(t, tc.expected, h.ValueAt(tc.index).Int64(), "index %d", tc.index)
	}
	require.Equal(t, int64(0), h.Current().Int64())

	t.Run("returned values are copies", func(t *testing.T) {
		v := h.ValueAt(3)
		v.SetInt64(42)
		require.Equal(t, int64(10), h.ValueAt(3).Int64())
	})

	t.Run("bad items", func(t *testing.T) {
		_, err := ParseHistory([]stackitem.Item{stackitem.Make(1)})
		require.Error(t, err)

		_, err = ParseHistory([]stackitem.Item{stackitem.Null{}})
		require.Error(t, err)

		_, err = ParseHistory([]stackitem.Item{
			stackitem.NewStruct([]stackitem.Item{stackitem.Make(1)}),
		})
		require.Error(t, err)

		_, err = ParseHistory([]stackitem.Item{
			checkpointItem(5, 1),
			checkpointItem(5, 2),
		})
		require.Error(t, err)
	})
}

func TestAccountHistory(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.AccountHistory(util.Uint160{4}, 10)
	require.Error(t, err)
	_, err = r.TotalSupplyHistory(10)
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{
			stackitem.Make([]stackitem.Item{
				checkpointItem(1, 100),
				checkpointItem(4, 60),
			}),
		},
	}
	h, err := r.AccountHistory(util.Uint160{4}, 10)
	require.NoError(t, err)
	require.Equal(t, History{
		{Index: big.NewInt(1), Value: big.NewInt(100)},
		{Index: big.NewInt(4), Value: big.NewInt(60)},
	}, h)
	require.Equal(t, int64(100), h.ValueAt(3).Int64())

	h, err = r.TotalSupplyHistory(10)
	require.NoError(t, err)
	require.Equal(t, int64(60), h.Current().Int64())

	ti.res = &result.Invoke{
		State:          "FAULT",
		FaultException: "oops",
	}
	_, err = r.AccountHistory(util.Uint160{4}, 10)
	require.Error(t, err)
}
