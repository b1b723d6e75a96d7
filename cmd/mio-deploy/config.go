package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"gopkg.in/yaml.v2"
)

const defaultTimeout = time.Minute

// config is a YAML configuration of the deployment.
//
//	rpc: http://localhost:30333
//	timeout: 1m
//	contracts: ./contracts
//	wallet:
//	  path: wallet.json
//	  address: NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM
//	  password: ""
//	token:
//	  owner: NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM
//	vault:
//	  release_time: 2027-01-01T00:00:00Z
//	  owner: NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM
type config struct {
	RPC       string `yaml:"rpc"`
	Timeout   string `yaml:"timeout"`
	Contracts string `yaml:"contracts"`

	Wallet struct {
		Path     string `yaml:"path"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
	} `yaml:"wallet"`

	Token struct {
		Owner string `yaml:"owner"`
	} `yaml:"token"`

	Vault *struct {
		ReleaseTime string `yaml:"release_time"`
		Owner       string `yaml:"owner"`
	} `yaml:"vault"`
}

// settings are validated and decoded config values.
type settings struct {
	rpc       string
	timeout   time.Duration
	contracts string

	walletPath     string
	walletAddress  *util.Uint160
	walletPassword string

	tokenOwner util.Uint160

	withVault   bool
	releaseTime time.Time
	vaultOwner  util.Uint160
}

func readConfig(path string) (config, error) {
	var cfg config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.UnmarshalStrict(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode YAML config: %w", err)
	}

	return cfg, nil
}

func (c config) settings() (settings, error) {
	var (
		s   settings
		err error
	)

	if c.RPC == "" {
		return s, errors.New("missing RPC endpoint")
	}
	s.rpc = c.RPC

	s.timeout = defaultTimeout
	if c.Timeout != "" {
		s.timeout, err = time.ParseDuration(c.Timeout)
		if err != nil {
			return s, fmt.Errorf("invalid timeout: %w", err)
		}
		if s.timeout <= 0 {
			return s, fmt.Errorf("non-positive timeout %s", s.timeout)
		}
	}

	s.contracts = c.Contracts
	if s.contracts == "" {
		s.contracts = "contracts"
	}

	if c.Wallet.Path == "" {
		return s, errors.New("missing wallet path")
	}
	s.walletPath = c.Wallet.Path
	s.walletPassword = c.Wallet.Password

	if c.Wallet.Address != "" {
		h, err := address.StringToUint160(c.Wallet.Address)
		if err != nil {
			return s, fmt.Errorf("invalid wallet address: %w", err)
		}
		s.walletAddress = &h
	}

	s.tokenOwner, err = optionalAddress(c.Token.Owner)
	if err != nil {
		return s, fmt.Errorf("invalid token owner: %w", err)
	}

	if c.Vault == nil {
		return s, nil
	}

	s.withVault = true

	if c.Vault.ReleaseTime == "" {
		return s, errors.New("missing vault release time")
	}
	s.releaseTime, err = time.Parse(time.RFC3339, c.Vault.ReleaseTime)
	if err != nil {
		return s, fmt.Errorf("invalid vault release time: %w", err)
	}

	s.vaultOwner, err = optionalAddress(c.Vault.Owner)
	if err != nil {
		return s, fmt.Errorf("invalid vault owner: %w", err)
	}

	return s, nil
}

// optionalAddress decodes Neo address, empty string means zero hash.
func optionalAddress(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, nil
	}
	return address.StringToUint160(s)
}
