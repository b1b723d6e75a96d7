package mio

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/validitylabs/mio-contracts/common"
	"github.com/validitylabs/mio-contracts/contracts/mio/checkpoint"
	"github.com/validitylabs/mio-contracts/contracts/mio/mioconst"
)

const (
	ownerKey           = 'o'
	pausedKey          = 'p'
	mintingFinishedKey = 'm'
	allowancePrefix    = 'a'

	// checkpoint subjects
	balancePrefix = 'b'
	supplySubject = 's'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		common.CheckVersion(common.UpdateFrom(data))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	checkOwnerAddress(args.owner)
	common.SetHash160(ctx, ownerKey, args.owner)

	runtime.Log("mio token initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the token owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	common.UpdateContract(nefFile, manifest, data)
	runtime.Log("mio token updated")
}

// Name returns human-readable token name.
func Name() string {
	return mioconst.Name
}

// Symbol is a NEP-17 standard method that returns token ticker symbol.
func Symbol() string {
	return mioconst.Symbol
}

// Decimals is a NEP-17 standard method that returns token precision.
func Decimals() int {
	return mioconst.Decimals
}

// TotalSupply is a NEP-17 standard method that returns current amount of
// tokens in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return checkpoint.Current(ctx, []byte{supplySubject})
}

// BalanceOf is a NEP-17 standard method that returns current balance of the
// account.
func BalanceOf(account interop.Hash160) int {
	common.CheckHash(account)

	ctx := storage.GetReadOnlyContext()
	return checkpoint.Current(ctx, balanceSubject(account))
}

// BalanceOfAt returns balance of the account as of the given block index.
// Balance of the account that had no history at that index is 0. Future
// indices return current balance.
func BalanceOfAt(account interop.Hash160, index int) int {
	common.CheckHash(account)

	ctx := storage.GetReadOnlyContext()
	return checkpoint.ValueAt(ctx, balanceSubject(account), index)
}

// TotalSupplyAt returns total supply as of the given block index.
func TotalSupplyAt(index int) int {
	ctx := storage.GetReadOnlyContext()
	return checkpoint.ValueAt(ctx, []byte{supplySubject}, index)
}

// History returns iterator over balance checkpoints of the account. Each
// element is a structure of block index and balance.
func History(account interop.Hash160) iterator.Iterator {
	common.CheckHash(account)

	ctx := storage.GetReadOnlyContext()
	return checkpoint.Iterate(ctx, balanceSubject(account))
}

// SupplyHistory returns iterator over total supply checkpoints.
func SupplyHistory() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return checkpoint.Iterate(ctx, []byte{supplySubject})
}

// Transfer is a NEP-17 standard method that transfers tokens from one account
// to another. It returns false if the sender witness is missing or the sender
// does not have enough tokens. It fails if the token is paused, amount is
// negative or the recipient is invalid: zero address or the token itself.
//
// If the recipient is a deployed contract, its onNEP17Payment method is called
// with the given data.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkTransferArgs(from, to, amount)

	if !runtime.CheckWitness(from) {
		runtime.Log("sender witness check failed")
		return false
	}

	if !move(ctx, from, to, amount) {
		runtime.Log("not enough assets")
		return false
	}

	postTransfer(from, to, amount, data)

	return true
}

// TransferFrom transfers tokens on behalf of the from account using allowance
// given to the spender. Allowance is decreased by the transferred amount. It
// returns false if the spender witness is missing, allowance or balance is
// not enough. Failures are the same as for Transfer.
func TransferFrom(spender, from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkTransferArgs(from, to, amount)
	common.CheckHash(spender)

	if !runtime.CheckWitness(spender) {
		runtime.Log("spender witness check failed")
		return false
	}

	allowed := getAllowance(ctx, from, spender)
	if allowed < amount {
		runtime.Log("allowance exceeded")
		return false
	}

	if !move(ctx, from, to, amount) {
		runtime.Log("not enough assets")
		return false
	}

	common.PutInt(ctx, allowanceKey(from, spender), allowed-amount)
	postTransfer(from, to, amount, data)

	return true
}

// Allowance returns amount of tokens spender is still allowed to transfer on
// behalf of the owner.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getAllowance(ctx, owner, spender)
}

// Approve sets allowance of the spender to transfer owner tokens. Nonzero
// allowance can't be changed to another nonzero value directly: it must be
// reset to zero first or changed with IncreaseApproval/DecreaseApproval.
//
// It produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkApprovalArgs(owner, spender, amount)

	if amount != 0 && getAllowance(ctx, owner, spender) != 0 {
		panic(mioconst.ErrAllowanceChange)
	}

	setAllowance(ctx, owner, spender, amount)
}

// IncreaseApproval increases allowance of the spender by delta.
//
// It produces Approval notification with the resulting allowance.
func IncreaseApproval(owner, spender interop.Hash160, delta int) {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkApprovalArgs(owner, spender, delta)

	setAllowance(ctx, owner, spender, getAllowance(ctx, owner, spender)+delta)
}

// DecreaseApproval decreases allowance of the spender by delta. Allowance
// never becomes negative: delta exceeding current allowance resets it to zero.
//
// It produces Approval notification with the resulting allowance.
func DecreaseApproval(owner, spender interop.Hash160, delta int) {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	checkApprovalArgs(owner, spender, delta)

	allowed := getAllowance(ctx, owner, spender) - delta
	if allowed < 0 {
		allowed = 0
	}

	setAllowance(ctx, owner, spender, allowed)
}

// MultiSend transfers amounts[i] tokens to recipients[i] from the given
// account. Either all transfers are made or the call fails.
//
// It produces Transfer notification for every pair.
func MultiSend(from interop.Hash160, recipients []interop.Hash160, amounts []int) {
	ctx := storage.GetContext()

	checkNotPaused(ctx)
	if len(from) != interop.Hash160Len {
		panic(mioconst.ErrInvalidSender)
	}
	common.CheckWitness(from)

	if len(recipients) != len(amounts) {
		panic(mioconst.ErrLengthMismatch)
	}

	sum := 0
	for i := 0; i < len(recipients); i++ { //nolint:intrange // Not supported by NeoGo
		checkRecipient(recipients[i])
		checkAmount(amounts[i])
		sum += amounts[i]
	}

	if checkpoint.Current(ctx, balanceSubject(from)) < sum {
		panic(mioconst.ErrInsufficientFunds)
	}

	for i := 0; i < len(recipients); i++ { //nolint:intrange // Not supported by NeoGo
		if !move(ctx, from, recipients[i], amounts[i]) {
			panic(mioconst.ErrInsufficientFunds)
		}
		postTransfer(from, recipients[i], amounts[i], nil)
	}
}

// Mint creates amount of new tokens on the recipient account. It can be
// invoked only by the owner until minting is finished. Recipient contract is
// not notified with onNEP17Payment.
//
// It produces Mint and Transfer notifications.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(getOwner(ctx))
	if common.IsSet(ctx, mintingFinishedKey) {
		panic(mioconst.ErrMintingFinished)
	}

	checkRecipient(to)
	checkAmount(amount)

	if amount > 0 {
		idx := snapshotIndex()
		subject := balanceSubject(to)
		checkpoint.Record(ctx, subject, idx, checkpoint.Current(ctx, subject)+amount)
		supply := []byte{supplySubject}
		checkpoint.Record(ctx, supply, idx, checkpoint.Current(ctx, supply)+amount)
	}

	runtime.Notify("Mint", to, amount)
	notifyTransfer(nil, to, amount)
}

// FinishMinting irreversibly disables Mint. It can be invoked only by the
// owner.
//
// It produces MintFinished notification.
func FinishMinting() {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(getOwner(ctx))
	if common.IsSet(ctx, mintingFinishedKey) {
		panic(mioconst.ErrMintingFinished)
	}

	common.SetFlag(ctx, mintingFinishedKey, true)
	runtime.Notify("MintFinished")
}

// MintingFinished returns true if minting is disabled.
func MintingFinished() bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsSet(ctx, mintingFinishedKey)
}

// Burn destroys amount of tokens of the given account. It can be invoked only
// by the account owner.
//
// It produces Burn and Transfer notifications.
func Burn(from interop.Hash160, amount int) {
	ctx := storage.GetContext()

	if len(from) != interop.Hash160Len {
		panic(mioconst.ErrInvalidSender)
	}
	common.CheckWitness(from)
	checkAmount(amount)

	subject := balanceSubject(from)
	balance := checkpoint.Current(ctx, subject)
	if balance < amount {
		panic(mioconst.ErrInsufficientFunds)
	}

	if amount > 0 {
		idx := snapshotIndex()
		checkpoint.Record(ctx, subject, idx, balance-amount)
		supply := []byte{supplySubject}
		checkpoint.Record(ctx, supply, idx, checkpoint.Current(ctx, supply)-amount)
	}

	runtime.Notify("Burn", from, amount)
	notifyTransfer(from, nil, amount)
}

// Pause stops all transfers and allowance changes. It can be invoked only by
// the owner.
//
// It produces Pause notification.
func Pause() {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(getOwner(ctx))
	checkNotPaused(ctx)

	common.SetFlag(ctx, pausedKey, true)
	runtime.Notify("Pause")
}

// Unpause resumes transfers stopped by Pause. It can be invoked only by the
// owner.
//
// It produces Unpause notification.
func Unpause() {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(getOwner(ctx))
	if !common.IsSet(ctx, pausedKey) {
		panic(mioconst.ErrNotPaused)
	}

	common.SetFlag(ctx, pausedKey, false)
	runtime.Notify("Unpause")
}

// Paused returns true if transfers are paused.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return common.IsSet(ctx, pausedKey)
}

// Owner returns current owner of the token.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// TransferOwnership passes token ownership to the new owner. It can be
// invoked only by the current owner.
//
// It produces OwnershipTransferred notification.
func TransferOwnership(newOwner interop.Hash160) {
	ctx := storage.GetContext()

	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)
	checkOwnerAddress(newOwner)

	common.SetHash160(ctx, ownerKey, newOwner)
	runtime.Notify("OwnershipTransferred", owner, newOwner)
}

// ReclaimToken transfers the whole balance of the given NEP-17 token held by
// this contract to the owner. It can be invoked only by the owner even if the
// token is paused. Reclaiming this token is not allowed.
func ReclaimToken(token interop.Hash160) {
	ctx := storage.GetReadOnlyContext()

	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)
	common.CheckHash(token)

	self := runtime.GetExecutingScriptHash()
	if token.Equals(self) {
		panic(mioconst.ErrReclaimSelf)
	}

	balance := contract.Call(token, "balanceOf", contract.ReadStates, self).(int)
	if balance == 0 {
		return
	}

	ok := contract.Call(token, "transfer", contract.All, self, owner, balance, nil).(bool)
	if !ok {
		panic(mioconst.ErrReclaimFailed)
	}
}

// OnNEP17Payment accepts foreign NEP-17 tokens sent to the contract so that
// they can be returned with ReclaimToken.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	runtime.Log("foreign tokens received")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func snapshotIndex() int {
	return ledger.CurrentIndex() + 1
}

func balanceSubject(account interop.Hash160) []byte {
	return append([]byte{balancePrefix}, account...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{allowancePrefix}, owner...), spender...)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return common.GetHash160(ctx, ownerKey)
}

func getAllowance(ctx storage.Context, owner, spender interop.Hash160) int {
	return common.GetInt(ctx, allowanceKey(owner, spender))
}

func setAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	common.PutInt(ctx, allowanceKey(owner, spender), amount)
	runtime.Notify("Approval", owner, spender, amount)
}

// move changes balances of both accounts at the current snapshot index. It
// returns false without any changes if the sender balance is not enough.
func move(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	fromSubject := balanceSubject(from)
	fromBalance := checkpoint.Current(ctx, fromSubject)
	if fromBalance < amount {
		return false
	}

	if amount == 0 || from.Equals(to) {
		return true
	}

	idx := snapshotIndex()
	checkpoint.Record(ctx, fromSubject, idx, fromBalance-amount)

	toSubject := balanceSubject(to)
	checkpoint.Record(ctx, toSubject, idx, checkpoint.Current(ctx, toSubject)+amount)

	return true
}

func postTransfer(from, to interop.Hash160, amount int, data any) {
	notifyTransfer(from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func notifyTransfer(from, to interop.Hash160, amount int) {
	runtime.Notify("Transfer", from, to, amount)
}

func checkNotPaused(ctx storage.Context) {
	if common.IsSet(ctx, pausedKey) {
		panic(mioconst.ErrPaused)
	}
}

func checkAmount(amount int) {
	if amount < 0 {
		panic(mioconst.ErrNegativeAmount)
	}
}

func checkRecipient(to interop.Hash160) {
	if len(to) != interop.Hash160Len || common.IsZeroHash(to) ||
		to.Equals(runtime.GetExecutingScriptHash()) {
		panic(mioconst.ErrInvalidRecipient)
	}
}

func checkOwnerAddress(owner interop.Hash160) {
	if len(owner) != interop.Hash160Len || common.IsZeroHash(owner) {
		panic(mioconst.ErrInvalidOwner)
	}
}

func checkTransferArgs(from, to interop.Hash160, amount int) {
	if len(from) != interop.Hash160Len {
		panic(mioconst.ErrInvalidSender)
	}
	checkRecipient(to)
	checkAmount(amount)
}

func checkApprovalArgs(owner, spender interop.Hash160, amount int) {
	common.CheckHash(owner)
	common.CheckHash(spender)
	checkAmount(amount)
	common.CheckWitness(owner)
}
