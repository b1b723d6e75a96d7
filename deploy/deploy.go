package deploy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Mio contracts deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetApplicationLog returns execution results of the persisted transaction.
	// It's used to await deployment transactions.
	GetApplicationLog(hash util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error)

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing. GetContractStateByHash may
	// return non-nil state.Contract along with an error.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// TokenContractPrm groups deployment parameters of the Mio Token contract.
type TokenContractPrm struct {
	Common CommonDeployPrm

	// Token owner. Local account is used if zero.
	Owner util.Uint160
}

// VaultContractPrm groups deployment parameters of the Mio Token Vault
// contract.
type VaultContractPrm struct {
	Common CommonDeployPrm

	// Moment after which locked tokens can be released. Must be in the future.
	ReleaseTime time.Time

	// Vault owner. Local account is used if zero.
	Owner util.Uint160
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// Contract addresses depend on it.
	LocalAccount *wallet.Account

	TokenContract TokenContractPrm

	// Optional, vault is not deployed if nil.
	VaultContract *VaultContractPrm
}

// Result groups addresses of the deployed contracts.
type Result struct {
	Token util.Uint160

	// Zero if vault deployment was not requested.
	Vault util.Uint160
}

// Deploy deploys Mio Token contract and, optionally, the vault locking this
// token to the Neo network represented by Prm.Blockchain.
//
// Contracts that already exist on the chain are not redeployed, so Deploy can
// be safely repeated after a failure. Contract address depends on the local
// account, the NEF checksum and the manifest name only, deploy data (owner,
// release time) doesn't change it.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	err := checkPrm(prm)
	if err != nil {
		return res, fmt.Errorf("invalid parameters: %w", err)
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	localAcc := prm.LocalAccount.ScriptHash()

	height, err := prm.Blockchain.GetBlockCount()
	if err != nil {
		return res, fmt.Errorf("get blockchain height: %w", err)
	}

	d := &deployer{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		localAcc:   prm.LocalAccount,
		height:     height,
	}

	tokenOwner := prm.TokenContract.Owner
	if tokenOwner.Equals(util.Uint160{}) {
		tokenOwner = localAcc
	}

	prm.Logger.Info("synchronizing Mio Token contract with the chain...")

	res.Token, err = d.sync(ctx, syncContractPrm{
		name:       "token",
		common:     prm.TokenContract.Common,
		deployData: tokenDeployData(tokenOwner),
	})
	if err != nil {
		return res, fmt.Errorf("sync Mio Token contract with the chain: %w", err)
	}

	prm.Logger.Info("Mio Token contract successfully synchronized", zap.Stringer("address", res.Token))

	if prm.VaultContract == nil {
		return res, nil
	}

	vaultOwner := prm.VaultContract.Owner
	if vaultOwner.Equals(util.Uint160{}) {
		vaultOwner = localAcc
	}

	prm.Logger.Info("synchronizing Vault contract with the chain...",
		zap.Time("release time", prm.VaultContract.ReleaseTime))

	res.Vault, err = d.sync(ctx, syncContractPrm{
		name:       "vault",
		common:     prm.VaultContract.Common,
		deployData: vaultDeployData(res.Token, prm.VaultContract.ReleaseTime, vaultOwner),
	})
	if err != nil {
		return res, fmt.Errorf("sync Vault contract with the chain: %w", err)
	}

	prm.Logger.Info("Vault contract successfully synchronized", zap.Stringer("address", res.Vault))

	return res, nil
}

func checkPrm(prm Prm) error {
	if prm.Blockchain == nil {
		return errors.New("missing blockchain")
	}
	if prm.LocalAccount == nil {
		return errors.New("missing local account")
	}
	if prm.LocalAccount.PrivateKey() == nil {
		return errors.New("local account is locked")
	}
	if prm.TokenContract.Common.Manifest.Name == "" {
		return errors.New("missing token contract manifest")
	}
	if prm.VaultContract != nil {
		if prm.VaultContract.Common.Manifest.Name == "" {
			return errors.New("missing vault contract manifest")
		}
		if prm.VaultContract.ReleaseTime.IsZero() {
			return errors.New("missing vault release time")
		}
	}
	return nil
}

// tokenDeployData builds data argument of the token's _deploy method.
func tokenDeployData(owner util.Uint160) []any {
	return []any{owner}
}

// vaultDeployData builds data argument of the vault's _deploy method. Release
// time is passed as Unix timestamp in milliseconds like block timestamps are.
func vaultDeployData(token util.Uint160, releaseTime time.Time, owner util.Uint160) []any {
	return []any{token, releaseTime.UnixMilli(), owner}
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Repeated deployment attempts within
// the same span produce the same transaction then.
func runtimeTransactionModifier(getBlockchainHeight func() uint32) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight := getBlockchainHeight()
		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
