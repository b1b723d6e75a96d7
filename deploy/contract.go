package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// deployer sends deployment transactions on behalf of the local account.
type deployer struct {
	logger     *zap.Logger
	blockchain Blockchain
	localAcc   *wallet.Account
	height     uint32

	// initialized on first deployment
	actor *actor.Actor
}

type syncContractPrm struct {
	name       string
	common     CommonDeployPrm
	deployData []any
}

// sync deploys the contract if it's missing on the chain and returns its
// address.
func (d *deployer) sync(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	addr := state.CreateContractHash(d.localAcc.ScriptHash(), prm.common.NEF.Checksum, prm.common.Manifest.Name)
	l := d.logger.With(zap.String("contract", prm.name), zap.Stringer("address", addr))

	exists, err := d.contractExists(addr)
	if err != nil {
		return addr, fmt.Errorf("check contract presence: %w", err)
	}

	if exists {
		l.Info("contract is already deployed, skip")
		return addr, nil
	}

	err = ctx.Err()
	if err != nil {
		return addr, err
	}

	a, err := d.getActor()
	if err != nil {
		return addr, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	l.Info("contract is missing on the chain, sending deployment transaction...")

	txHash, vub, err := management.New(a).Deploy(&prm.common.NEF, &prm.common.Manifest, prm.deployData)
	if err != nil {
		return addr, fmt.Errorf("send deployment transaction: %w", err)
	}

	l.Debug("deployment transaction sent, waiting for it to be persisted...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := a.Wait(txHash, vub, nil)
	if err != nil {
		return addr, fmt.Errorf("wait for deployment transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return addr, fmt.Errorf("deployment transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	l.Info("contract successfully deployed", zap.Stringer("tx", txHash))

	return addr, nil
}

func (d *deployer) contractExists(addr util.Uint160) (bool, error) {
	_, err := d.blockchain.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}

	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}

	return false, err
}

func (d *deployer) getActor() (*actor.Actor, error) {
	if d.actor != nil {
		return d.actor, nil
	}

	if d.localAcc.PrivateKey() == nil {
		return nil, errors.New("local account is locked")
	}

	a, err := actor.NewTuned(d.blockchain, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: d.localAcc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: d.localAcc,
	}}, actor.Options{
		CheckerModifier: runtimeTransactionModifier(func() uint32 { return d.height }),
	})
	if err != nil {
		return nil, err
	}

	d.actor = a

	return a, nil
}
