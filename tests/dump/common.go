package dump

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// ID is a unique identifier of the dump prepared according to the model
// described in the current package.
type ID struct {
	// Label of the dump source (e.g. testnet, mainnet).
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + sep + strconv.FormatUint(uint64(x.Block), 10)
}

// decodes ID fields from the hyphen-separated string.
func (x *ID) decodeString(s string) error {
	ss := strings.Split(s, sep)
	if len(ss) < 2 {
		return fmt.Errorf("expected '%s'-separated string with at least 2 items", sep)
	}

	n, err := strconv.ParseUint(ss[1], 10, 32)
	if err != nil {
		return fmt.Errorf("decode block number from '%s': %w", ss[1], err)
	}

	x.Label = ss[0]
	x.Block = uint32(n)

	return nil
}

// global encoding of binary values.
var _encoding = base64.StdEncoding

// dumpContractState is a JSON-encoded information about the dumped contract.
type dumpContractState struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

// dumpStreams groups data streams for contracts' states, storages and
// decoded histories.
type dumpStreams struct {
	contracts, storageItems, histories io.ReadWriteCloser
}

// close closes all streams.
func (x *dumpStreams) close() {
	_ = x.histories.Close()
	_ = x.storageItems.Close()
	_ = x.contracts.Close()
}

const (
	// word separator used in dump file naming
	sep = "-"
	// suffix of file with contracts' states
	statesFileSuffix = "contracts.json"
	// suffix of file with contracts' storages
	storageFileSuffix = "storage.csv"
	// suffix of file with decoded checkpoint histories
	historiesFileSuffix = "history.csv"
)

// initDumpStreams opens data streams for the dump files located in the
// specified directory. If read flag is set, streams are read-only. Otherwise,
// files must not exist, and streams are write only.
func initDumpStreams(d *dumpStreams, dir string, id ID, read bool) error {
	var (
		flag int
		perm os.FileMode
	)

	if read {
		flag = os.O_RDONLY
	} else {
		flag = os.O_CREATE | os.O_WRONLY
		perm = 0600
	}

	for _, f := range []struct {
		suffix string
		stream *io.ReadWriteCloser
	}{
		{statesFileSuffix, &d.contracts},
		{storageFileSuffix, &d.storageItems},
		{historiesFileSuffix, &d.histories},
	} {
		p := filepath.Join(dir, strings.Join([]string{id.String(), f.suffix}, sep))
		if !read {
			if err := checkFileNotExists(p); err != nil {
				d.closeOpened()
				return err
			}
		}

		file, err := os.OpenFile(p, flag, perm)
		if err != nil {
			d.closeOpened()
			return fmt.Errorf("open file '%s': %w", p, err)
		}

		*f.stream = file
	}

	return nil
}

// closeOpened closes streams opened so far.
func (x *dumpStreams) closeOpened() {
	for _, s := range []io.ReadWriteCloser{x.contracts, x.storageItems, x.histories} {
		if s != nil {
			_ = s.Close()
		}
	}
	*x = dumpStreams{}
}

// checkFileNotExists fails if there is a file at the specified path.
func checkFileNotExists(p string) error {
	_, err := os.Stat(p)
	if err == nil {
		return fmt.Errorf("file '%s' already exists: %w", p, os.ErrExist)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("file '%s' absence check failed: %w", p, err)
	}
	return nil
}
