package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
)

// subject name of total supply checkpoints in history CSV.
const supplyName = "supply"

// Creator dumps states of the Mio Token contracts. Output file format:
//
//	'<label>-<block>-contracts.json': JSON array of contracts' states
//	'<label>-<block>-storage.csv': CSV of contracts' storages
//	'<label>-<block>-history.csv': CSV of token checkpoint histories
//
// Storage CSV are 'name,key,value' where name stands for contract name and
// binary key-value are base64-encoded. History CSV are
// 'name,subject,position,index,value' where subject is either 'supply' or
// Neo address of the account.
//
// Use IterateDumps to access existing dumps.
type Creator struct {
	dumpStreams

	contracts []dumpContractState

	storageItemsCSV *csv.Writer
	historiesCSV    *csv.Writer
}

// NewCreator returns Creator which dumps contracts into given directory. The
// dump is identified by specified ID. Resulting Creator should be closed when
// finished working with it.
//
// NewCreator fails if dump with provided ID already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	var res Creator

	err := initDumpStreams(&res.dumpStreams, dir, id, false)
	if err != nil {
		return nil, err
	}

	res.storageItemsCSV = csv.NewWriter(res.dumpStreams.storageItems)
	res.historiesCSV = csv.NewWriter(res.dumpStreams.histories)

	return &res, nil
}

// AddContract adds given state of the named Neo contract to the resulting dump
// and returns StorageWriter for the contract storage. After all needed
// contracts are added, they should be flushed via Flush method.
func (x *Creator) AddContract(name string, st state.Contract) *StorageWriter {
	x.contracts = append(x.contracts, dumpContractState{
		Name:  name,
		State: st,
	})

	return &StorageWriter{
		name: name,
		csv:  x.storageItemsCSV,
	}
}

// AddToken is AddContract for the Mio Token contract: checkpoint items
// written to the returned StorageWriter are additionally decoded into
// histories.
func (x *Creator) AddToken(name string, st state.Contract) *StorageWriter {
	w := x.AddContract(name, st)
	w.histories = x.historiesCSV
	return w
}

// Flush flushes accumulated dump to the file system.
func (x *Creator) Flush() error {
	jEnc := json.NewEncoder(x.dumpStreams.contracts)
	jEnc.SetIndent("", " ")

	err := jEnc.Encode(x.contracts)
	if err != nil {
		return fmt.Errorf("encode contract states to JSON: %w", err)
	}

	for _, w := range []*csv.Writer{x.storageItemsCSV, x.historiesCSV} {
		w.Flush()

		err = w.Error()
		if err != nil {
			return fmt.Errorf("flush CSV data: %w", err)
		}
	}

	return nil
}

// Close releases underlying resources of the Creator and makes it unusable.
func (x *Creator) Close() {
	x.close()
}

// StorageWriter writes data into the superior contract's storage dump.
type StorageWriter struct {
	name      string
	csv       *csv.Writer
	histories *csv.Writer
}

// Write saves given binary key-value into the contract dump as storage item.
func (x *StorageWriter) Write(key, value []byte) error {
	err := x.csv.Write([]string{
		x.name,
		_encoding.EncodeToString(key),
		_encoding.EncodeToString(value),
	})
	if err != nil {
		return fmt.Errorf("write storage item as CSV data: %w", err)
	}

	if x.histories == nil {
		return nil
	}

	cp, err := ParseCheckpoint(key, value)
	if err != nil {
		if errors.Is(err, errNotCheckpoint) {
			return nil
		}
		return fmt.Errorf("decode checkpoint from key %x: %w", key, err)
	}

	subject := supplyName
	if !cp.Supply {
		subject = address.Uint160ToString(cp.Account)
	}

	err = x.histories.Write([]string{
		x.name,
		subject,
		strconv.FormatUint(uint64(cp.Position), 10),
		strconv.FormatUint(uint64(cp.Index), 10),
		cp.Value.String(),
	})
	if err != nil {
		return fmt.Errorf("write checkpoint as CSV data: %w", err)
	}

	return nil
}
