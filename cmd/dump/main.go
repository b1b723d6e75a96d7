package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/validitylabs/mio-contracts/rpc/mio"
	"github.com/validitylabs/mio-contracts/rpc/vault"
	"github.com/validitylabs/mio-contracts/tests/dump"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	tokenAddress := flag.String("token", "", "Address of the Mio Token contract (Neo address or LE hex)")
	vaultAddress := flag.String("vault", "", "Address of the vault contract (optional)")
	rootDir := flag.String("dir", "testdata", "Directory to put dump files into")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *tokenAddress == "":
		log.Fatal("missing token contract address")
	}

	token, err := parseContractAddress(*tokenAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid token contract address: %w", err))
	}

	var vaultHash *util.Uint160
	if *vaultAddress != "" {
		h, err := parseContractAddress(*vaultAddress)
		if err != nil {
			log.Fatal(fmt.Errorf("invalid vault contract address: %w", err))
		}
		vaultHash = &h
	}

	err = os.MkdirAll(*rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, *rootDir, *chainLabel, token, vaultHash)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Mio contracts are successfully dumped to '%s/'\n", *rootDir)
}

// parseContractAddress accepts both Neo address and hex-encoded LE script
// hash.
func parseContractAddress(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	h, errHex := util.Uint160DecodeStringLE(s)
	if errHex != nil {
		return h, fmt.Errorf("neither Neo address (%w) nor LE hex (%w)", err, errHex)
	}

	return h, nil
}

func _dump(neoBlockchainRPCEndpoint, rootDir, label string, token util.Uint160, vaultHash *util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	d, err := dump.NewCreator(rootDir, dump.ID{
		Label: label,
		Block: b.currentBlock,
	})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	err = overtakeContracts(b, d, token, vaultHash)
	if err != nil {
		return err
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	return nil
}

func overtakeContracts(from *remoteBlockchain, to *dump.Creator, token util.Uint160, vaultHash *util.Uint160) error {
	log.Println("Processing contract 'token'...")

	tokenContract, err := from.rpc.GetContractStateByHash(token)
	if err != nil {
		return fmt.Errorf("get token contract by hash: %w", err)
	}

	writer := to.AddToken("token", *tokenContract)
	err = from.iterateContractStorage(token, writer.Write)
	if err != nil {
		return fmt.Errorf("iterate 'token' contract storage: %w", err)
	}

	tokenReader := mio.NewReader(from.actor, token)

	symbol, err := tokenReader.Symbol()
	if err != nil {
		return fmt.Errorf("get token symbol: %w", err)
	}

	supply, err := tokenReader.TotalSupply()
	if err != nil {
		return fmt.Errorf("get token total supply: %w", err)
	}

	log.Printf("Token %s, total supply %s\n", symbol, supply)

	if vaultHash == nil {
		return nil
	}

	log.Println("Processing contract 'vault'...")

	vaultContract, err := from.rpc.GetContractStateByHash(*vaultHash)
	if err != nil {
		return fmt.Errorf("get vault contract by hash: %w", err)
	}

	vaultReader := vault.NewReader(from.actor, *vaultHash)

	vaultToken, err := vaultReader.Token()
	if err != nil {
		return fmt.Errorf("get vault token: %w", err)
	}

	if !vaultToken.Equals(token) {
		return fmt.Errorf("vault locks foreign token %s", vaultToken.StringLE())
	}

	writer = to.AddContract("vault", *vaultContract)
	err = from.iterateContractStorage(*vaultHash, writer.Write)
	if err != nil {
		return fmt.Errorf("iterate 'vault' contract storage: %w", err)
	}

	releaseAt, err := vaultReader.ReleaseAt()
	if err != nil {
		return fmt.Errorf("get vault release time: %w", err)
	}

	locked, err := vaultReader.TotalLocked()
	if err != nil {
		return fmt.Errorf("get vault total locked: %w", err)
	}

	log.Printf("Vault locks %s until %s\n", locked, releaseAt)

	return nil
}
