package footoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

func Symbol() string {
	return "FOO"
}

func Decimals() int {
	return 0
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), "s")
}

func BalanceOf(account interop.Hash160) int {
	return getInt(storage.GetReadOnlyContext(), account)
}

// Mint credits tokens without onNEP17Payment call.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	storage.Put(ctx, to, getInt(ctx, to)+amount)
	storage.Put(ctx, "s", getInt(ctx, "s")+amount)
	notifyTransfer(nil, to, amount)
}

func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	if amount < 0 {
		panic("negative amount")
	}
	if !runtime.CheckWitness(from) {
		return false
	}
	balance := getInt(ctx, from)
	if balance < amount {
		return false
	}
	storage.Put(ctx, from, balance-amount)
	storage.Put(ctx, to, getInt(ctx, to)+amount)
	notifyTransfer(from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
	return true
}

func notifyTransfer(from, to interop.Hash160, amount int) {
	runtime.Notify("Transfer", from, to, amount)
}

func getInt(ctx storage.Context, key any) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}
	return convert.ToInteger(val)
}
