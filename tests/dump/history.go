package dump

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Token storage layout of checkpoint histories.
const (
	checkpointPrefix = 'c'
	balancePrefix    = 'b'
	supplySubject    = 's'
	positionLen      = 4
)

// Checkpoint is a single decoded checkpoint of a balance or total supply
// history.
type Checkpoint struct {
	// Supply is set for total supply checkpoints, Account is zero then.
	Supply  bool
	Account util.Uint160

	Position uint32
	Index    uint32
	Value    *big.Int
}

var errNotCheckpoint = errors.New("not a checkpoint storage item")

// ParseCheckpoint decodes token storage item holding a checkpoint. It
// returns an error wrapping errNotCheckpoint for other items of the token
// storage.
func ParseCheckpoint(key, value []byte) (Checkpoint, error) {
	var cp Checkpoint

	if len(key) < 1+1+positionLen || key[0] != checkpointPrefix {
		return cp, errNotCheckpoint
	}

	subject := key[1 : len(key)-positionLen]
	switch {
	case len(subject) == 1 && subject[0] == supplySubject:
		cp.Supply = true
	case len(subject) == 1+util.Uint160Size && subject[0] == balancePrefix:
		var err error
		cp.Account, err = util.Uint160DecodeBytesBE(subject[1:])
		if err != nil {
			return cp, fmt.Errorf("decode account: %w", err)
		}
	default:
		return cp, fmt.Errorf("%w: unknown subject %x", errNotCheckpoint, subject)
	}

	pos := key[len(key)-positionLen:]
	cp.Position = uint32(pos[0])<<24 | uint32(pos[1])<<16 | uint32(pos[2])<<8 | uint32(pos[3])

	item, err := stackitem.Deserialize(value)
	if err != nil {
		return cp, fmt.Errorf("deserialize checkpoint: %w", err)
	}

	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) != 2 {
		return cp, errors.New("checkpoint is not a 2-field structure")
	}

	index, err := fields[0].TryInteger()
	if err != nil {
		return cp, fmt.Errorf("checkpoint index: %w", err)
	}
	if !index.IsUint64() || index.Uint64() > uint64(^uint32(0)) {
		return cp, fmt.Errorf("checkpoint index %s is out of range", index)
	}
	cp.Index = uint32(index.Uint64())

	cp.Value, err = fields[1].TryInteger()
	if err != nil {
		return cp, fmt.Errorf("checkpoint value: %w", err)
	}

	return cp, nil
}
