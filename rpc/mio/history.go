package mio

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// History is a list of checkpoints of a single balance (or of the total
// supply) ordered by block index, as returned from `history` and
// `supplyHistory` iterators.
type History []CheckpointCheckpoint

// ParseHistory converts expanded iterator items into History. Items must be
// ordered by block index the way the contract stores them.
func ParseHistory(items []stackitem.Item) (History, error) {
	res := make(History, 0, len(items))
	for i := range items {
		cp, err := itemToCheckpointCheckpoint(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("checkpoint #%d: %w", i, err)
		}
		if cp == nil {
			return nil, fmt.Errorf("checkpoint #%d: null item", i)
		}
		if len(res) > 0 && res[len(res)-1].Index.Cmp(cp.Index) >= 0 {
			return nil, fmt.Errorf("checkpoint #%d: unordered block index %s", i, cp.Index)
		}
		res = append(res, *cp)
	}
	return res, nil
}

// ValueAt returns the value at the given block index. It's zero before the
// first checkpoint and the last value for any index after it, just like
// `balanceOfAt` and `totalSupplyAt` contract methods do.
func (h History) ValueAt(index uint32) *big.Int {
	bi := new(big.Int).SetUint64(uint64(index))
	// First checkpoint with Index > index.
	i := sort.Search(len(h), func(i int) bool {
		return h[i].Index.Cmp(bi) > 0
	})
	if i == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(h[i-1].Value)
}

// Current returns the latest value or zero if there are no checkpoints.
func (h History) Current() *big.Int {
	if len(h) == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(h[len(h)-1].Value)
}

// AccountHistory retrieves up to maxItems balance checkpoints of the account
// expanding the iterator in the VM. See [ContractReader.HistoryExpanded].
func (c *ContractReader) AccountHistory(account util.Uint160, maxItems int) (History, error) {
	items, err := c.HistoryExpanded(account, maxItems)
	if err != nil {
		return nil, err
	}
	return ParseHistory(items)
}

// TotalSupplyHistory retrieves up to maxItems total supply checkpoints. See
// [ContractReader.SupplyHistoryExpanded].
func (c *ContractReader) TotalSupplyHistory(maxItems int) (History, error) {
	items, err := c.SupplyHistoryExpanded(maxItems)
	if err != nil {
		return nil, err
	}
	return ParseHistory(items)
}
