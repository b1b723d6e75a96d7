package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

const rpcTimeout = 15 * time.Second

// remoteBlockchain reads token and vault state from the Neo RPC node. All
// storage is read at the same state root, so token balances and vault locks
// of one dump are consistent with each other.
type remoteBlockchain struct {
	rpc   *rpcclient.Client
	actor *actor.Actor

	currentBlock uint32
	stateRoot    util.Uint256
}

// newRemoteBlockChain dials Neo RPC server and fixes the state root of the
// penult block as the dump snapshot.
func newRemoteBlockChain(endpoint string) (*remoteBlockchain, error) {
	acc, err := wallet.NewAccount()
	if err != nil {
		return nil, fmt.Errorf("generate reader account: %w", err)
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    rpcTimeout,
		RequestTimeout: rpcTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("dial RPC node %s: %w", endpoint, err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init reader actor: %w", err)
	}

	height, err := act.GetBlockCount()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get chain height: %w", err)
	}

	root, err := c.GetStateRootByHeight(height - 1)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("get state root of block #%d: %w", height-1, err)
	}

	return &remoteBlockchain{
		rpc:          c,
		actor:        act,
		currentBlock: height,
		stateRoot:    root.Root,
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// iterateContractStorage passes all storage items of the contract at the
// snapshot state root into f page by page. It stops on the first f error.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	var start []byte

	for {
		res, err := x.rpc.FindStates(x.stateRoot, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("find storage items of %s at state root %s: %w", contract.StringLE(), x.stateRoot.StringLE(), err)
		}

		for i := range res.Results {
			if err = f(res.Results[i].Key, res.Results[i].Value); err != nil {
				return err
			}
		}

		if !res.Truncated || len(res.Results) == 0 {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
