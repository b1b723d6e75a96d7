package tests

import (
	"encoding/json"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/validitylabs/mio-contracts/common"
	"github.com/validitylabs/mio-contracts/contracts/mio/mioconst"
)

const (
	mioPath          = "../contracts/mio"
	nep17recvPath    = "../internal/testcontracts/nep17recv"
	nep17drainerPath = "../internal/testcontracts/nep17drainer"
	footokenPath     = "../internal/testcontracts/footoken"
)

func compileMioContract(t *testing.T, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, mioPath, path.Join(mioPath, "config.yml"))
}

func deployMioContract(t *testing.T, e *neotest.Executor, owner util.Uint160) util.Uint160 {
	c := compileMioContract(t, e)
	e.DeployContract(t, c, []any{owner})
	return c.Hash
}

func deployTestContract(t *testing.T, e *neotest.Executor, dir string) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, dir, path.Join(dir, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// newMioInvoker deploys token owned by the committee.
func newMioInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployMioContract(t, e, e.CommitteeHash)
	return e.CommitteeInvoker(h)
}

func transferEvent(token util.Uint160, from, to stackitem.Item, amount int64) state.NotificationEvent {
	return state.NotificationEvent{
		ScriptHash: token,
		Name:       "Transfer",
		Item:       stackitem.NewArray([]stackitem.Item{from, to, stackitem.Make(amount)}),
	}
}

func TestMioGeneric(t *testing.T) {
	c := newMioInvoker(t)

	c.Invoke(t, mioconst.Name, "name")
	c.Invoke(t, mioconst.Symbol, "symbol")
	c.Invoke(t, mioconst.Decimals, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, c.CommitteeHash, "owner")
	c.Invoke(t, false, "paused")
	c.Invoke(t, false, "mintingFinished")
	c.Invoke(t, common.Version, "version")
}

func TestMioDeploy(t *testing.T) {
	e := newExecutor(t)
	ctr := compileMioContract(t, e)

	e.DeployContractCheckFAULT(t, ctr, []any{util.Uint160{}}, mioconst.ErrInvalidOwner)
	e.DeployContractCheckFAULT(t, ctr, []any{[]byte{1, 2, 3}}, mioconst.ErrInvalidOwner)
	e.DeployContract(t, ctr, []any{e.CommitteeHash})
}

func TestMioMint(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	h := acc.ScriptHash()

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "mint", h, 100)
	c.InvokeFail(t, mioconst.ErrNegativeAmount, "mint", h, -1)
	c.InvokeFail(t, mioconst.ErrInvalidRecipient, "mint", util.Uint160{}, 100)
	c.InvokeFail(t, mioconst.ErrInvalidRecipient, "mint", c.Hash, 100)
	c.InvokeFail(t, mioconst.ErrInvalidRecipient, "mint", []byte{1, 2, 3}, 100)

	txHash := c.Invoke(t, stackitem.Null{}, "mint", h, 100)
	c.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Mint",
		Item:       stackitem.NewArray([]stackitem.Item{hashItem(h), stackitem.Make(100)}),
	})
	c.CheckTxNotificationEvent(t, txHash, 1, transferEvent(c.Hash, stackitem.Null{}, hashItem(h), 100))

	c.Invoke(t, 100, "balanceOf", h)
	c.Invoke(t, 100, "totalSupply")

	c.Invoke(t, stackitem.Null{}, "mint", h, 50)
	c.Invoke(t, 150, "balanceOf", h)
	c.Invoke(t, 150, "totalSupply")
}

func TestMioFinishMinting(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "finishMinting")

	txHash := c.Invoke(t, stackitem.Null{}, "finishMinting")
	c.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "MintFinished",
		Item:       stackitem.NewArray([]stackitem.Item{}),
	})
	c.Invoke(t, true, "mintingFinished")

	c.InvokeFail(t, mioconst.ErrMintingFinished, "mint", acc.ScriptHash(), 100)
	c.InvokeFail(t, mioconst.ErrMintingFinished, "finishMinting")
}

func TestMioBalanceOfAt(t *testing.T) {
	c := newMioInvoker(t)

	owner := c.NewAccount(t)
	recipient := c.NewAccount(t)
	cOwner := c.WithSigners(owner)
	ownerHash, recipientHash := owner.ScriptHash(), recipient.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", ownerHash, 100)
	k1 := c.Chain.BlockHeight()

	c.Invoke(t, 100, "balanceOfAt", ownerHash, k1)
	c.Invoke(t, 0, "balanceOfAt", ownerHash, k1-1)
	c.Invoke(t, 0, "balanceOfAt", ownerHash, 0)
	c.Invoke(t, 100, "totalSupplyAt", k1)
	c.Invoke(t, 0, "totalSupplyAt", k1-1)

	txHash := cOwner.Invoke(t, true, "transfer", ownerHash, recipientHash, 10, nil)
	k2 := c.Chain.BlockHeight()
	c.CheckTxNotificationEvent(t, txHash, 0, transferEvent(c.Hash, hashItem(ownerHash), hashItem(recipientHash), 10))

	c.Invoke(t, 90, "balanceOfAt", ownerHash, k2)
	c.Invoke(t, 10, "balanceOfAt", recipientHash, k2)
	c.Invoke(t, 100, "balanceOfAt", ownerHash, k2-1)
	c.Invoke(t, 0, "balanceOfAt", recipientHash, k2-1)
	c.Invoke(t, 100, "balanceOfAt", ownerHash, k1)

	t.Run("future index projects current value", func(t *testing.T) {
		c.Invoke(t, 90, "balanceOfAt", ownerHash, k2+1000)
		c.Invoke(t, 100, "totalSupplyAt", k2+1000)
	})

	var k3 uint32
	t.Run("later mutations do not affect past", func(t *testing.T) {
		cRecipient := c.WithSigners(recipient)
		cRecipient.Invoke(t, true, "transfer", recipientHash, ownerHash, 4, nil)
		k3 = c.Chain.BlockHeight()

		c.Invoke(t, 90, "balanceOfAt", ownerHash, k2)
		c.Invoke(t, 10, "balanceOfAt", recipientHash, k2)
		c.Invoke(t, 94, "balanceOfAt", ownerHash, k3)
		c.Invoke(t, 6, "balanceOfAt", recipientHash, k3)
	})

	require.Equal(t, []checkpoint{{k1, 100}, {k2, 90}, {k3, 94}},
		toCheckpoints(t, testInvokeIterator(t, c, "history", ownerHash)))
	require.Equal(t, []checkpoint{{k1, 100}},
		toCheckpoints(t, testInvokeIterator(t, c, "supplyHistory")))
}

func TestMioBalanceOfAtLongHistory(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	h := acc.ScriptHash()

	var indices []uint32
	for i := 1; i <= 9; i++ {
		c.Invoke(t, stackitem.Null{}, "mint", h, 1)
		indices = append(indices, c.Chain.BlockHeight())
		// gap between checkpoints
		c.AddNewBlock(t)
	}

	for i, idx := range indices {
		c.Invoke(t, i+1, "balanceOfAt", h, idx)
		c.Invoke(t, i+1, "balanceOfAt", h, idx+1)
		c.Invoke(t, i, "balanceOfAt", h, idx-1)
	}
}

func TestMioCheckpointCoalescing(t *testing.T) {
	c := newMioInvoker(t)

	sender := c.NewAccount(t)
	recipient := c.NewAccount(t)
	cSender := c.WithSigners(sender)
	senderHash, recipientHash := sender.ScriptHash(), recipient.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", senderHash, 100)
	mintIndex := c.Chain.BlockHeight()

	tx1 := cSender.PrepareInvoke(t, "transfer", senderHash, recipientHash, 10, nil)
	tx2 := cSender.PrepareInvoke(t, "transfer", senderHash, recipientHash, 5, nil)
	c.AddNewBlock(t, tx1, tx2)
	c.CheckHalt(t, tx1.Hash(), stackitem.NewBool(true))
	c.CheckHalt(t, tx2.Hash(), stackitem.NewBool(true))
	transferIndex := c.Chain.BlockHeight()

	require.Equal(t, []checkpoint{{mintIndex, 100}, {transferIndex, 85}},
		toCheckpoints(t, testInvokeIterator(t, c, "history", senderHash)))
	require.Equal(t, []checkpoint{{transferIndex, 15}},
		toCheckpoints(t, testInvokeIterator(t, c, "history", recipientHash)))

	c.Invoke(t, 85, "balanceOfAt", senderHash, transferIndex)
	c.Invoke(t, 15, "balanceOfAt", recipientHash, transferIndex)
}

func TestMioTransfer(t *testing.T) {
	c := newMioInvoker(t)

	sender := c.NewAccount(t)
	recipient := c.NewAccount(t)
	cSender := c.WithSigners(sender)
	senderHash, recipientHash := sender.ScriptHash(), recipient.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", senderHash, 100)

	cSender.InvokeFail(t, mioconst.ErrInvalidRecipient, "transfer", senderHash, util.Uint160{}, 10, nil)
	cSender.InvokeFail(t, mioconst.ErrInvalidRecipient, "transfer", senderHash, c.Hash, 10, nil)
	cSender.InvokeFail(t, mioconst.ErrInvalidSender, "transfer", []byte{1, 2, 3}, recipientHash, 10, nil)
	cSender.InvokeFail(t, mioconst.ErrNegativeAmount, "transfer", senderHash, recipientHash, -1, nil)

	t.Run("missing witness", func(t *testing.T) {
		c.Invoke(t, false, "transfer", senderHash, recipientHash, 10, nil)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		cSender.Invoke(t, false, "transfer", senderHash, recipientHash, 101, nil)
		c.Invoke(t, 100, "balanceOf", senderHash)
	})

	t.Run("zero amount", func(t *testing.T) {
		txHash := cSender.Invoke(t, true, "transfer", senderHash, recipientHash, 0, nil)
		c.CheckTxNotificationEvent(t, txHash, 0, transferEvent(c.Hash, hashItem(senderHash), hashItem(recipientHash), 0))
		require.Len(t, testInvokeIterator(t, c, "history", senderHash), 1)
		require.Len(t, testInvokeIterator(t, c, "history", recipientHash), 0)
	})

	t.Run("to self", func(t *testing.T) {
		cSender.Invoke(t, true, "transfer", senderHash, senderHash, 10, nil)
		c.Invoke(t, 100, "balanceOf", senderHash)
		require.Len(t, testInvokeIterator(t, c, "history", senderHash), 1)
	})

	cSender.Invoke(t, true, "transfer", senderHash, recipientHash, 100, nil)
	c.Invoke(t, 0, "balanceOf", senderHash)
	c.Invoke(t, 100, "balanceOf", recipientHash)
	c.Invoke(t, 100, "totalSupply")
}

func TestMioTransferToContract(t *testing.T) {
	c := newMioInvoker(t)
	rcvHash := deployTestContract(t, c.Executor, nep17recvPath)
	rcv := c.CommitteeInvoker(rcvHash)

	sender := c.NewAccount(t)
	cSender := c.WithSigners(sender)
	senderHash := sender.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", senderHash, 100)

	cSender.Invoke(t, true, "transfer", senderHash, rcvHash, 10, "hello")
	rcv.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		hashItem(c.Hash),
		hashItem(senderHash),
		stackitem.Make(10),
		stackitem.NewByteArray([]byte("hello")),
	}), "get")

	cSender.InvokeFail(t, "payment rejected", "transfer", senderHash, rcvHash, 10, "reject")
	c.Invoke(t, 90, "balanceOf", senderHash)
	c.Invoke(t, 10, "balanceOf", rcvHash)
}

func TestMioApprove(t *testing.T) {
	c := newMioInvoker(t)

	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	cOwner := c.WithSigners(owner)
	ownerHash, spenderHash := owner.ScriptHash(), spender.ScriptHash()

	approvalEvent := func(amount int64) state.NotificationEvent {
		return state.NotificationEvent{
			ScriptHash: c.Hash,
			Name:       "Approval",
			Item: stackitem.NewArray([]stackitem.Item{
				hashItem(ownerHash), hashItem(spenderHash), stackitem.Make(amount),
			}),
		}
	}

	c.InvokeFail(t, common.ErrWitnessFailed, "approve", ownerHash, spenderHash, 10)
	cOwner.InvokeFail(t, mioconst.ErrNegativeAmount, "approve", ownerHash, spenderHash, -1)

	txHash := cOwner.Invoke(t, stackitem.Null{}, "approve", ownerHash, spenderHash, 10)
	c.CheckTxNotificationEvent(t, txHash, 0, approvalEvent(10))
	c.Invoke(t, 10, "allowance", ownerHash, spenderHash)

	cOwner.InvokeFail(t, mioconst.ErrAllowanceChange, "approve", ownerHash, spenderHash, 20)
	cOwner.InvokeFail(t, mioconst.ErrAllowanceChange, "approve", ownerHash, spenderHash, 10)

	cOwner.Invoke(t, stackitem.Null{}, "approve", ownerHash, spenderHash, 0)
	c.Invoke(t, 0, "allowance", ownerHash, spenderHash)
	cOwner.Invoke(t, stackitem.Null{}, "approve", ownerHash, spenderHash, 20)
	c.Invoke(t, 20, "allowance", ownerHash, spenderHash)

	txHash = cOwner.Invoke(t, stackitem.Null{}, "increaseApproval", ownerHash, spenderHash, 5)
	c.CheckTxNotificationEvent(t, txHash, 0, approvalEvent(25))
	c.Invoke(t, 25, "allowance", ownerHash, spenderHash)

	cOwner.Invoke(t, stackitem.Null{}, "decreaseApproval", ownerHash, spenderHash, 10)
	c.Invoke(t, 15, "allowance", ownerHash, spenderHash)

	t.Run("decrease below zero is clamped", func(t *testing.T) {
		txHash := cOwner.Invoke(t, stackitem.Null{}, "decreaseApproval", ownerHash, spenderHash, 100)
		c.CheckTxNotificationEvent(t, txHash, 0, approvalEvent(0))
		c.Invoke(t, 0, "allowance", ownerHash, spenderHash)
	})

	c.InvokeFail(t, common.ErrWitnessFailed, "increaseApproval", ownerHash, spenderHash, 5)
	c.InvokeFail(t, common.ErrWitnessFailed, "decreaseApproval", ownerHash, spenderHash, 5)
}

func TestMioTransferFrom(t *testing.T) {
	c := newMioInvoker(t)

	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	recipient := c.NewAccount(t)
	cOwner := c.WithSigners(owner)
	cSpender := c.WithSigners(spender)
	ownerHash, spenderHash, recipientHash := owner.ScriptHash(), spender.ScriptHash(), recipient.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", ownerHash, 100)
	cOwner.Invoke(t, stackitem.Null{}, "approve", ownerHash, spenderHash, 10)

	t.Run("missing spender witness", func(t *testing.T) {
		cOwner.Invoke(t, false, "transferFrom", spenderHash, ownerHash, recipientHash, 5, nil)
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		cSpender.Invoke(t, false, "transferFrom", spenderHash, ownerHash, recipientHash, 11, nil)
	})

	cSpender.InvokeFail(t, mioconst.ErrInvalidRecipient, "transferFrom", spenderHash, ownerHash, c.Hash, 5, nil)

	txHash := cSpender.Invoke(t, true, "transferFrom", spenderHash, ownerHash, recipientHash, 7, nil)
	c.CheckTxNotificationEvent(t, txHash, 0, transferEvent(c.Hash, hashItem(ownerHash), hashItem(recipientHash), 7))

	c.Invoke(t, 3, "allowance", ownerHash, spenderHash)
	c.Invoke(t, 93, "balanceOf", ownerHash)
	c.Invoke(t, 7, "balanceOf", recipientHash)

	t.Run("insufficient balance", func(t *testing.T) {
		cOwner.Invoke(t, true, "transfer", ownerHash, recipientHash, 92, nil)
		cSpender.Invoke(t, false, "transferFrom", spenderHash, ownerHash, recipientHash, 3, nil)
		c.Invoke(t, 3, "allowance", ownerHash, spenderHash)
	})
}

func TestMioMultiSend(t *testing.T) {
	c := newMioInvoker(t)

	sender := c.NewAccount(t)
	r1, r2 := c.NewAccount(t), c.NewAccount(t)
	cSender := c.WithSigners(sender)
	senderHash := sender.ScriptHash()
	recipients := []any{r1.ScriptHash(), r2.ScriptHash()}

	c.Invoke(t, stackitem.Null{}, "mint", senderHash, 15)

	c.InvokeFail(t, common.ErrWitnessFailed, "multiSend", senderHash, recipients, []any{5, 5})
	cSender.InvokeFail(t, mioconst.ErrLengthMismatch, "multiSend", senderHash, recipients, []any{5})
	cSender.InvokeFail(t, mioconst.ErrNegativeAmount, "multiSend", senderHash, recipients, []any{20, -5})
	cSender.InvokeFail(t, mioconst.ErrInvalidRecipient, "multiSend", senderHash,
		[]any{r1.ScriptHash(), util.Uint160{}}, []any{5, 5})

	cSender.InvokeFail(t, mioconst.ErrInsufficientFunds, "multiSend", senderHash, recipients, []any{10, 10})
	c.Invoke(t, 0, "balanceOf", r1.ScriptHash())
	c.Invoke(t, 15, "balanceOf", senderHash)

	txHash := cSender.Invoke(t, stackitem.Null{}, "multiSend", senderHash, recipients, []any{10, 5})
	sendIndex := c.Chain.BlockHeight()
	c.CheckTxNotificationEvent(t, txHash, 0, transferEvent(c.Hash, hashItem(senderHash), hashItem(r1.ScriptHash()), 10))
	c.CheckTxNotificationEvent(t, txHash, 1, transferEvent(c.Hash, hashItem(senderHash), hashItem(r2.ScriptHash()), 5))

	c.Invoke(t, 0, "balanceOf", senderHash)
	c.Invoke(t, 10, "balanceOf", r1.ScriptHash())
	c.Invoke(t, 5, "balanceOf", r2.ScriptHash())

	require.Equal(t, []checkpoint{{sendIndex, 10}}, toCheckpoints(t, testInvokeIterator(t, c, "history", r1.ScriptHash())))

	t.Run("recipient spends sender balance", func(t *testing.T) {
		drainerHash := deployTestContract(t, c.Executor, nep17drainerPath)
		r3 := c.NewAccount(t)

		c.Invoke(t, stackitem.Null{}, "mint", senderHash, 20)
		cSender.InvokeFail(t, mioconst.ErrInsufficientFunds, "multiSend", senderHash,
			[]any{drainerHash, r3.ScriptHash()}, []any{10, 10})

		c.Invoke(t, 20, "balanceOf", senderHash)
		c.Invoke(t, 0, "balanceOf", drainerHash)
		c.Invoke(t, 0, "balanceOf", r3.ScriptHash())

		cSender.Invoke(t, stackitem.Null{}, "multiSend", senderHash,
			[]any{r3.ScriptHash(), drainerHash}, []any{10, 5})
		c.Invoke(t, 0, "balanceOf", senderHash)
		c.Invoke(t, 10, "balanceOf", r3.ScriptHash())
		c.Invoke(t, 10, "balanceOf", drainerHash)
	})
}

func TestMioBurn(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	h := acc.ScriptHash()

	preMint := c.Chain.BlockHeight()
	c.Invoke(t, stackitem.Null{}, "mint", h, 100)
	mintIndex := c.Chain.BlockHeight()

	c.InvokeFail(t, common.ErrWitnessFailed, "burn", h, 100)
	cAcc.InvokeFail(t, mioconst.ErrInsufficientFunds, "burn", h, 101)
	cAcc.InvokeFail(t, mioconst.ErrNegativeAmount, "burn", h, -1)

	txHash := cAcc.Invoke(t, stackitem.Null{}, "burn", h, 100)
	burnIndex := c.Chain.BlockHeight()
	c.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Burn",
		Item:       stackitem.NewArray([]stackitem.Item{hashItem(h), stackitem.Make(100)}),
	})
	c.CheckTxNotificationEvent(t, txHash, 1, transferEvent(c.Hash, hashItem(h), stackitem.Null{}, 100))

	c.Invoke(t, 0, "balanceOf", h)
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, 0, "balanceOfAt", h, burnIndex)
	c.Invoke(t, 0, "totalSupplyAt", burnIndex)
	c.Invoke(t, 100, "balanceOfAt", h, mintIndex)
	c.Invoke(t, 100, "totalSupplyAt", mintIndex)
	c.Invoke(t, 0, "balanceOfAt", h, preMint)
	c.Invoke(t, 0, "totalSupplyAt", preMint)
}

func TestMioPause(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	other := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	h, otherHash := acc.ScriptHash(), other.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", h, 100)
	cAcc.Invoke(t, stackitem.Null{}, "approve", h, otherHash, 10)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "pause")
	c.InvokeFail(t, mioconst.ErrNotPaused, "unpause")

	txHash := c.Invoke(t, stackitem.Null{}, "pause")
	c.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Pause",
		Item:       stackitem.NewArray([]stackitem.Item{}),
	})
	c.Invoke(t, true, "paused")
	c.InvokeFail(t, mioconst.ErrPaused, "pause")

	cAcc.InvokeFail(t, mioconst.ErrPaused, "transfer", h, otherHash, 1, nil)
	c.WithSigners(other).InvokeFail(t, mioconst.ErrPaused, "transferFrom", otherHash, h, otherHash, 1, nil)
	cAcc.InvokeFail(t, mioconst.ErrPaused, "approve", h, otherHash, 0)
	cAcc.InvokeFail(t, mioconst.ErrPaused, "increaseApproval", h, otherHash, 1)
	cAcc.InvokeFail(t, mioconst.ErrPaused, "decreaseApproval", h, otherHash, 1)
	cAcc.InvokeFail(t, mioconst.ErrPaused, "multiSend", h, []any{otherHash}, []any{1})

	// reads and owner operations are not paused
	c.Invoke(t, 100, "balanceOf", h)
	c.Invoke(t, 10, "allowance", h, otherHash)
	c.Invoke(t, stackitem.Null{}, "mint", h, 1)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "unpause")
	c.Invoke(t, stackitem.Null{}, "unpause")
	c.Invoke(t, false, "paused")

	cAcc.Invoke(t, true, "transfer", h, otherHash, 1, nil)
}

func TestMioTransferOwnership(t *testing.T) {
	c := newMioInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	h := acc.ScriptHash()

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "transferOwnership", h)
	c.InvokeFail(t, mioconst.ErrInvalidOwner, "transferOwnership", util.Uint160{})

	txHash := c.Invoke(t, stackitem.Null{}, "transferOwnership", h)
	c.CheckTxNotificationEvent(t, txHash, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "OwnershipTransferred",
		Item:       stackitem.NewArray([]stackitem.Item{hashItem(c.CommitteeHash), hashItem(h)}),
	})
	c.Invoke(t, h, "owner")

	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "mint", h, 1)
	cAcc.Invoke(t, stackitem.Null{}, "mint", h, 1)
	c.Invoke(t, 1, "balanceOf", h)
}

func TestMioReclaimToken(t *testing.T) {
	c := newMioInvoker(t)
	fooHash := deployTestContract(t, c.Executor, footokenPath)
	foo := c.CommitteeInvoker(fooHash)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	h := acc.ScriptHash()

	foo.Invoke(t, stackitem.Null{}, "mint", h, 50)
	foo.WithSigners(acc).Invoke(t, true, "transfer", h, c.Hash, 50, nil)
	foo.Invoke(t, 50, "balanceOf", c.Hash)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "reclaimToken", fooHash)
	c.InvokeFail(t, mioconst.ErrReclaimSelf, "reclaimToken", c.Hash)

	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, stackitem.Null{}, "reclaimToken", fooHash)

	foo.Invoke(t, 0, "balanceOf", c.Hash)
	foo.Invoke(t, 50, "balanceOf", c.CommitteeHash)

	t.Run("nothing to reclaim", func(t *testing.T) {
		c.Invoke(t, stackitem.Null{}, "reclaimToken", fooHash)
		foo.Invoke(t, 50, "balanceOf", c.CommitteeHash)
	})
}

func TestMioSupplyConservation(t *testing.T) {
	c := newMioInvoker(t)

	accs := []neotest.Signer{c.NewAccount(t), c.NewAccount(t), c.NewAccount(t)}
	start := c.Chain.BlockHeight()

	c.Invoke(t, stackitem.Null{}, "mint", accs[0].ScriptHash(), 100)
	c.Invoke(t, stackitem.Null{}, "mint", accs[1].ScriptHash(), 30)
	c.WithSigners(accs[0]).Invoke(t, true, "transfer", accs[0].ScriptHash(), accs[2].ScriptHash(), 40, nil)
	c.WithSigners(accs[1]).Invoke(t, stackitem.Null{}, "multiSend", accs[1].ScriptHash(),
		[]any{accs[0].ScriptHash(), accs[2].ScriptHash()}, []any{5, 5})
	c.WithSigners(accs[2]).Invoke(t, stackitem.Null{}, "burn", accs[2].ScriptHash(), 25)
	c.WithSigners(accs[0]).Invoke(t, stackitem.Null{}, "approve", accs[0].ScriptHash(), accs[1].ScriptHash(), 20)
	c.WithSigners(accs[1]).Invoke(t, true, "transferFrom", accs[1].ScriptHash(), accs[0].ScriptHash(), accs[1].ScriptHash(), 20, nil)

	for idx := start; idx <= c.Chain.BlockHeight(); idx++ {
		var sum int64
		for i := range accs {
			sum += testInvokeInt(t, c, "balanceOfAt", accs[i].ScriptHash(), idx)
		}
		require.Equal(t, testInvokeInt(t, c, "totalSupplyAt", idx), sum, idx)
	}

	c.Invoke(t, 105, "totalSupply")
}

func TestMioUpdate(t *testing.T) {
	e := newExecutor(t)
	ctr := compileMioContract(t, e)
	e.DeployContract(t, ctr, []any{e.CommitteeHash})
	c := e.CommitteeInvoker(ctr.Hash)

	rawNEF, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	c.WithSigners(c.NewAccount(t)).InvokeFail(t, common.ErrOwnerWitnessFailed, "update", rawNEF, rawManifest, nil)
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNEF, rawManifest, nil)
}
