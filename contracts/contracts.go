/*
Package contracts provides access to compiled Mio Token and Vault contracts.

Contracts are compiled into <name>/contract.nef and <name>/manifest.json
files next to their sources, e.g.

	neo-go contract compile -i contracts/mio -c contracts/mio/config.yml \
		-o contracts/mio/contract.nef -m contracts/mio/manifest.json
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	mioDir   = "mio"
	vaultDir = "vault"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about Neo contract stored in the current package.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")

	// Vault references the token, so the token goes first.
	allContracts = []string{
		mioDir,
		vaultDir,
	}
)

// Get returns compiled token and vault contracts stored in the given file
// system.
func Get(fsys fs.FS) (token Contract, vault Contract, err error) {
	cs, err := read(fsys, allContracts)
	if err != nil {
		return token, vault, err
	}
	return cs[0], cs[1], nil
}

// ReadDir is Get for the directory tree rooted at dir (usually the contracts
// directory of this repository).
func ReadDir(dir string) (token Contract, vault Contract, err error) {
	return Get(os.DirFS(dir))
}

// read reads contracts from the listed directories of the given fs.FS.
func read(_fs fs.FS, dirs []string) ([]Contract, error) {
	var res = make([]Contract, 0, len(dirs))

	for i := range dirs {
		c, err := readContractFromDir(_fs, dirs[i])
		if err != nil {
			return nil, fmt.Errorf("read contract %s: %w", dirs[i], err)
		}

		res = append(res, c)
	}

	return res, nil
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS paths are always slash-separated, so filepath.Join() is not
	// applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
