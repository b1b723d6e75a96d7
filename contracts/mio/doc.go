/*
Mio contract is a NEP-17 token with a checkpointed balance history.

Every balance-affecting operation (mint, burn, transfer, transferFrom,
multiSend) records new balances of the affected accounts and the new total
supply at the index of the block being persisted. The history is never
pruned, so balance of any account and total supply can be queried as of any
past block with balanceOfAt and totalSupplyAt.

Besides NEP-17 methods the contract provides ERC-20 style allowances with
protection from the approve race (nonzero allowance can't be changed to
another nonzero value directly), bulk transfers, owner-controlled minting
that can be finished irreversibly, burning, pausing of transfers and
recovery of foreign NEP-17 tokens sent to the contract by mistake.

Methods that require a caller accept it as an explicit account argument and
check its witness.

# Contract notifications

Transfer notification. It is a NEP-17 standard notification. Mint is
notified with null sender, burn with null receiver.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced with the resulting allowance value on every
allowance change.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Mint and Burn notifications precede corresponding Transfer notifications.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	Burn:
	  - name: burner
	    type: Hash160
	  - name: amount
	    type: Integer

MintFinished, Pause and Unpause notifications have no parameters.

OwnershipTransferred notification.

	OwnershipTransferred:
	  - name: previousOwner
	    type: Hash160
	  - name: newOwner
	    type: Hash160
*/
package mio
