package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/validitylabs/mio-contracts/common"
	"github.com/validitylabs/mio-contracts/contracts/vault/vaultconst"
)

const (
	tokenKey       = 't'
	releaseTimeKey = 'r'
	ownerKey       = 'o'
	totalLockedKey = 's'
	lockedPrefix   = 'l'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		common.CheckVersion(common.UpdateFrom(data))
		return
	}

	args := data.(struct {
		token       interop.Hash160
		releaseTime int
		owner       interop.Hash160
	})

	common.CheckHash(args.token)
	common.CheckHash(args.owner)

	if args.releaseTime <= runtime.GetTime() {
		panic(vaultconst.ErrReleaseTimeInPast)
	}

	common.SetHash160(ctx, tokenKey, args.token)
	storage.Put(ctx, releaseTimeKey, args.releaseTime)
	common.SetHash160(ctx, ownerKey, args.owner)

	runtime.Log("vault contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the vault owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	common.UpdateContract(nefFile, manifest, data)
	runtime.Log("vault contract updated")
}

// OnNEP17Payment credits received tokens to the beneficiary passed as data
// or to the sender if data is null. Only vault token is accepted.
//
// It produces Locked notification.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(getToken(ctx)) {
		panic(vaultconst.ErrWrongToken)
	}

	if amount == 0 {
		return
	}

	beneficiary := from
	if data != nil {
		beneficiary = data.(interop.Hash160)
	}
	checkBeneficiary(beneficiary)

	key := lockedKey(beneficiary)
	common.PutInt(ctx, key, common.GetInt(ctx, key)+amount)
	common.PutInt(ctx, totalLockedKey, common.GetInt(ctx, totalLockedKey)+amount)

	runtime.Notify("Locked", beneficiary, amount)
}

// AddBalance locks amount of tokens of the depositor on its own behalf. See
// AddBalanceFor.
func AddBalance(from interop.Hash160, amount int) {
	AddBalanceFor(from, from, amount)
}

// AddBalanceFor transfers amount of tokens from the depositor to the vault
// and locks them on behalf of the beneficiary. Depositor must approve the
// vault to spend amount of its tokens first. Deposits are accepted at any
// time.
func AddBalanceFor(from, beneficiary interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()

	common.CheckHash(from)
	checkBeneficiary(beneficiary)
	if amount <= 0 {
		panic(vaultconst.ErrInvalidAmount)
	}
	common.CheckWitness(from)

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(getToken(ctx), "transferFrom", contract.All,
		self, from, self, amount, beneficiary).(bool)
	if !ok {
		panic(vaultconst.ErrDepositFailed)
	}
}

// Release sends all tokens locked on behalf of the beneficiary to it. It can be
// invoked only by the beneficiary. See ReleaseFor.
func Release(beneficiary interop.Hash160) {
	common.CheckHash(beneficiary)
	common.CheckWitness(beneficiary)
	ReleaseFor(beneficiary)
}

// ReleaseFor sends all tokens locked on behalf of the beneficiary to it. It
// fails before release time and if the beneficiary has nothing locked.
//
// It produces Released notification.
func ReleaseFor(beneficiary interop.Hash160) {
	ctx := storage.GetContext()

	common.CheckHash(beneficiary)
	checkReleased(ctx)

	if !release(ctx, beneficiary) {
		panic(vaultconst.ErrNothingLocked)
	}
}

// BatchRelease sends locked tokens to every beneficiary from the list.
// Beneficiaries with nothing locked are skipped. It fails before release
// time.
//
// It produces Released notification for every beneficiary with locked tokens.
func BatchRelease(beneficiaries []interop.Hash160) {
	ctx := storage.GetContext()

	checkReleased(ctx)

	for i := 0; i < len(beneficiaries); i++ { //nolint:intrange // Not supported by NeoGo
		common.CheckHash(beneficiaries[i])
		release(ctx, beneficiaries[i])
	}
}

// GetLockedBalance returns amount of tokens locked on behalf of the
// beneficiary.
func GetLockedBalance(beneficiary interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, lockedKey(beneficiary))
}

// TotalLocked returns amount of tokens locked on behalf of all beneficiaries.
func TotalLocked() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, totalLockedKey)
}

// Token returns address of the vault token.
func Token() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getToken(ctx)
}

// ReleaseTime returns Unix timestamp in milliseconds after which locked
// tokens can be released.
func ReleaseTime() int {
	ctx := storage.GetReadOnlyContext()
	return getReleaseTime(ctx)
}

// IsReleased returns true if release time is reached.
func IsReleased() bool {
	ctx := storage.GetReadOnlyContext()
	return runtime.GetTime() >= getReleaseTime(ctx)
}

// Owner returns the vault owner.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// release zeroes locked balance of the beneficiary and transfers it. It
// returns false if there is nothing to release.
func release(ctx storage.Context, beneficiary interop.Hash160) bool {
	key := lockedKey(beneficiary)
	amount := common.GetInt(ctx, key)
	if amount == 0 {
		return false
	}

	common.PutInt(ctx, key, 0)
	common.PutInt(ctx, totalLockedKey, common.GetInt(ctx, totalLockedKey)-amount)

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(getToken(ctx), "transfer", contract.All,
		self, beneficiary, amount, nil).(bool)
	if !ok {
		panic(vaultconst.ErrReleaseFailed)
	}

	runtime.Notify("Released", beneficiary, amount)

	return true
}

func checkReleased(ctx storage.Context) {
	if runtime.GetTime() < getReleaseTime(ctx) {
		panic(vaultconst.ErrNotReleased)
	}
}

func checkBeneficiary(beneficiary interop.Hash160) {
	common.CheckHash(beneficiary)
	if beneficiary.Equals(runtime.GetExecutingScriptHash()) {
		panic(vaultconst.ErrVaultBeneficiary)
	}
}

func lockedKey(beneficiary interop.Hash160) []byte {
	return append([]byte{lockedPrefix}, beneficiary...)
}

func getToken(ctx storage.Context) interop.Hash160 {
	return common.GetHash160(ctx, tokenKey)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return common.GetHash160(ctx, ownerKey)
}

func getReleaseTime(ctx storage.Context) int {
	return common.GetInt(ctx, releaseTimeKey)
}
