package vault

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ReleaseAt returns vault release time converted from the millisecond
// timestamp the contract keeps.
func (c *ContractReader) ReleaseAt() (time.Time, error) {
	ms, err := c.ReleaseTime()
	if err != nil {
		return time.Time{}, err
	}
	if !ms.IsInt64() {
		return time.Time{}, fmt.Errorf("release time %s overflows int64", ms)
	}
	return time.UnixMilli(ms.Int64()), nil
}

func uint160Params(hs []util.Uint160) []any {
	res := make([]any, len(hs))
	for i := range hs {
		res[i] = hs[i]
	}
	return res
}
