package tests

import (
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const msPerYear = int64(365 * 24 * time.Hour / time.Millisecond)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// addBlockWithTime persists a block with the given timestamp (in
// milliseconds) and transactions.
func addBlockWithTime(t testing.TB, e *neotest.Executor, ts uint64, txs ...*transaction.Transaction) {
	b := e.NewUnsignedBlock(t, txs...)
	b.Timestamp = ts
	e.SignBlock(b)
	require.NoError(t, e.Chain.AddBlock(b))
}

// testInvokeInt calls contract method without persisting a transaction and
// returns its integer result.
func testInvokeInt(t testing.TB, c *neotest.ContractInvoker, method string, args ...any) int64 {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	return s.Pop().BigInt().Int64()
}

// testInvokeIterator calls contract method returning an iterator and expands
// it.
func testInvokeIterator(t testing.TB, c *neotest.ContractInvoker, method string, args ...any) []stackitem.Item {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	return iteratorToArray(iter)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

type checkpoint struct {
	index uint32
	value int64
}

func toCheckpoints(t testing.TB, items []stackitem.Item) []checkpoint {
	res := make([]checkpoint, 0, len(items))
	for i := range items {
		fields, ok := items[i].Value().([]stackitem.Item)
		require.True(t, ok)
		require.Len(t, fields, 2)

		index, err := fields[0].TryInteger()
		require.NoError(t, err)
		value, err := fields[1].TryInteger()
		require.NoError(t, err)

		res = append(res, checkpoint{index: uint32(index.Int64()), value: value.Int64()})
	}
	return res
}

func hashItem(h util.Uint160) stackitem.Item {
	return stackitem.NewByteArray(h.BytesBE())
}
