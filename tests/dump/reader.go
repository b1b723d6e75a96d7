package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
)

// IterateDumps iterates over all dumps collected by the Creator model in
// the specified directory, and passes ID and Reader of each dump into f.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	var (
		id      ID
		r       Reader
		streams dumpStreams
	)

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, e error) error {
		if errors.Is(e, fs.ErrNotExist) {
			return nil
		}
		if e != nil {
			return e
		}

		if d.IsDir() {
			return nil
		}

		name := d.Name()

		if !strings.HasSuffix(name, statesFileSuffix) {
			return nil
		}

		err := id.decodeString(name)
		if err != nil {
			return fmt.Errorf("decode dump ID from file name '%s': %w", d.Name(), err)
		}

		err = initDumpStreams(&streams, dir, id, true)
		if err != nil {
			return fmt.Errorf("init dump streams ('%s'): %w", name, err)
		}

		err = r.fromDumpStreams(streams)
		streams.close()
		if err != nil {
			return fmt.Errorf("init dump reader ('%s'): %w", name, err)
		}

		f(id, &r)

		return nil
	})
}

type kv struct{ k, v []byte }

type namedCheckpoint struct {
	name string
	cp   Checkpoint
}

// Reader reads contracts collected in the superior dump.
type Reader struct {
	states    []dumpContractState
	mStorage  map[string][]kv
	histories []namedCheckpoint
}

func (x *Reader) fromDumpStreams(s dumpStreams) error {
	x.states = x.states[:0]
	err := json.NewDecoder(s.contracts).Decode(&x.states)
	if err != nil {
		return fmt.Errorf("decode contract states from JSON: %w", err)
	}

	if x.mStorage != nil {
		clear(x.mStorage)
	} else {
		x.mStorage = make(map[string][]kv)
	}

	err = readCSV(s.storageItems, 3, func(rec []string) error {
		var (
			_kv kv
			err error
		)

		_kv.k, err = _encoding.DecodeString(rec[1])
		if err != nil {
			return fmt.Errorf("decode storage item key: %w", err)
		}

		_kv.v, err = _encoding.DecodeString(rec[2])
		if err != nil {
			return fmt.Errorf("decode storage item value: %w", err)
		}

		x.mStorage[rec[0]] = append(x.mStorage[rec[0]], _kv)

		return nil
	})
	if err != nil {
		return fmt.Errorf("read storage items: %w", err)
	}

	x.histories = x.histories[:0]

	err = readCSV(s.histories, 5, func(rec []string) error {
		cp, err := decodeHistoryRecord(rec[1:])
		if err != nil {
			return err
		}

		x.histories = append(x.histories, namedCheckpoint{name: rec[0], cp: cp})

		return nil
	})
	if err != nil {
		return fmt.Errorf("read histories: %w", err)
	}

	return nil
}

// readCSV passes records with the fixed number of fields into f.
func readCSV(r io.Reader, fields int, f func([]string) error) error {
	_csv := csv.NewReader(r)
	_csv.FieldsPerRecord = fields
	_csv.ReuseRecord = true

	for {
		rec, err := _csv.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read next CSV record: %w", err)
		}

		// out-of-range safety guaranteed by csv settings
		err = f(rec)
		if err != nil {
			return err
		}
	}
}

// decodes 'subject,position,index,value' record.
func decodeHistoryRecord(rec []string) (Checkpoint, error) {
	var (
		cp  Checkpoint
		err error
	)

	if rec[0] == supplyName {
		cp.Supply = true
	} else {
		cp.Account, err = address.StringToUint160(rec[0])
		if err != nil {
			return cp, fmt.Errorf("decode account address: %w", err)
		}
	}

	pos, err := strconv.ParseUint(rec[1], 10, 32)
	if err != nil {
		return cp, fmt.Errorf("decode checkpoint position: %w", err)
	}
	cp.Position = uint32(pos)

	index, err := strconv.ParseUint(rec[2], 10, 32)
	if err != nil {
		return cp, fmt.Errorf("decode checkpoint index: %w", err)
	}
	cp.Index = uint32(index)

	var ok bool
	cp.Value, ok = new(big.Int).SetString(rec[3], 10)
	if !ok {
		return cp, fmt.Errorf("invalid checkpoint value '%s'", rec[3])
	}

	return cp, nil
}

// IterateContractStates iterates over all contracts from the superior dump and
// passes their states into f.
func (x *Reader) IterateContractStates(f func(name string, _state state.Contract)) error {
	for i := range x.states {
		f(x.states[i].Name, x.states[i].State)
	}
	return nil
}

// IterateContractStorages iterates over all contracts from the superior dump
// and passes their storage items into f.
func (x *Reader) IterateContractStorages(f func(name string, key, value []byte)) error {
	for name, kvs := range x.mStorage {
		for i := range kvs {
			f(name, kvs[i].k, kvs[i].v)
		}
	}
	return nil
}

// IterateHistories passes decoded checkpoints of the token contracts from
// the superior dump into f in the storage order, i.e. grouped by subject and
// ordered by position within the subject.
func (x *Reader) IterateHistories(f func(name string, cp Checkpoint)) error {
	for i := range x.histories {
		f(x.histories[i].name, x.histories[i].cp)
	}
	return nil
}
