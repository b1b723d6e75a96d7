package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/validitylabs/mio-contracts/contracts"
	"github.com/validitylabs/mio-contracts/deploy"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML deployment configuration")
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server (overrides config)")
	contractsDir := flag.String("contracts", "", "Directory with compiled contracts (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logs")

	flag.Parse()

	if *configPath == "" {
		log.Fatal("missing config file")
	}

	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *neoRPCEndpoint != "" {
		cfg.RPC = *neoRPCEndpoint
	}
	if *contractsDir != "" {
		cfg.Contracts = *contractsDir
	}

	s, err := cfg.settings()
	if err != nil {
		log.Fatal(fmt.Errorf("invalid config: %w", err))
	}

	var logger *zap.Logger
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = run(ctx, logger, s)
	if err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, s settings) error {
	token, vault, err := contracts.ReadDir(s.contracts)
	if err != nil {
		return fmt.Errorf("read compiled contracts: %w", err)
	}

	acc, err := openAccount(s)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := rpcclient.New(ctx, s.rpc, rpcclient.Options{
		DialTimeout:    s.timeout,
		RequestTimeout: s.timeout,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	prm := deploy.Prm{
		Logger:       logger,
		Blockchain:   c,
		LocalAccount: acc,
		TokenContract: deploy.TokenContractPrm{
			Common: deploy.CommonDeployPrm{
				NEF:      token.NEF,
				Manifest: token.Manifest,
			},
			Owner: s.tokenOwner,
		},
	}

	if s.withVault {
		prm.VaultContract = &deploy.VaultContractPrm{
			Common: deploy.CommonDeployPrm{
				NEF:      vault.NEF,
				Manifest: vault.Manifest,
			},
			ReleaseTime: s.releaseTime,
			Owner:       s.vaultOwner,
		}
	}

	res, err := deploy.Deploy(ctx, prm)
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String("token", address.Uint160ToString(res.Token))}
	if s.withVault {
		fields = append(fields, zap.String("vault", address.Uint160ToString(res.Vault)))
	}

	logger.Info("Mio contracts are deployed", fields...)

	return nil
}

// openAccount opens the wallet and decrypts the configured account (the
// default one if no address is set).
func openAccount(s settings) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(s.walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	var acc *wallet.Account
	if s.walletAddress != nil {
		acc = w.GetAccount(*s.walletAddress)
	} else if len(w.Accounts) > 0 {
		acc = w.Accounts[0]
	}

	if acc == nil {
		return nil, errors.New("account not found in the wallet")
	}

	err = acc.Decrypt(s.walletPassword, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}
