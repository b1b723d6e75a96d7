package mio

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

func uint160Params(hs []util.Uint160) []any {
	res := make([]any, len(hs))
	for i := range hs {
		res[i] = hs[i]
	}
	return res
}

func bigIntParams(vs []*big.Int) []any {
	res := make([]any, len(vs))
	for i := range vs {
		res[i] = vs[i]
	}
	return res
}
