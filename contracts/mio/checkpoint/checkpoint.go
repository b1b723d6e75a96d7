/*
Package checkpoint implements append-only value histories stored in the
contract storage.

Every history belongs to a subject (an arbitrary byte string chosen by the
caller, e.g. prefixed account address) and consists of checkpoints ordered by
strictly increasing snapshot index. The last checkpoint of the history holds
the current value. Point-in-time lookups are done by binary search, so they
require O(log n) storage reads.

Storage layout:

	'n' + subject             -> number of checkpoints
	'c' + subject + position  -> serialized Checkpoint

Position is encoded as a 4-byte big-endian integer, which keeps storage
iteration order equal to the history order.
*/
package checkpoint

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/validitylabs/mio-contracts/common"
)

// Checkpoint is a value of the subject recorded at the snapshot index.
type Checkpoint struct {
	Index int
	Value int
}

const (
	countPrefix = 'n'
	itemPrefix  = 'c'
)

// Record sets value of the subject at the given snapshot index. New
// checkpoint is appended if index is greater than the index of the last
// checkpoint, otherwise the last checkpoint value is overwritten, so there
// is exactly one checkpoint per snapshot index.
func Record(ctx storage.Context, subject []byte, index, value int) {
	n := Count(ctx, subject)
	if n > 0 {
		last := get(ctx, subject, n-1)
		if index <= last.Index {
			last.Value = value
			common.SetSerialized(ctx, itemKey(subject, n-1), last)
			return
		}
	}

	common.SetSerialized(ctx, itemKey(subject, n), Checkpoint{
		Index: index,
		Value: value,
	})
	storage.Put(ctx, countKey(subject), n+1)
}

// ValueAt returns the value of the subject as of the given snapshot index,
// i.e. the value of the rightmost checkpoint with Index <= index. It returns
// 0 if the subject has no checkpoints at or before the index.
func ValueAt(ctx storage.Context, subject []byte, index int) int {
	n := Count(ctx, subject)
	if n == 0 {
		return 0
	}

	last := get(ctx, subject, n-1)
	if index >= last.Index {
		return last.Value
	}

	first := get(ctx, subject, 0)
	if index < first.Index {
		return 0
	}

	// cp[lo].Index <= index < cp[hi].Index
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if get(ctx, subject, mid).Index <= index {
			lo = mid
		} else {
			hi = mid
		}
	}

	return get(ctx, subject, lo).Value
}

// Current returns the latest value of the subject or 0 if there is no history.
func Current(ctx storage.Context, subject []byte) int {
	n := Count(ctx, subject)
	if n == 0 {
		return 0
	}

	return get(ctx, subject, n-1).Value
}

// Count returns the number of checkpoints of the subject.
func Count(ctx storage.Context, subject []byte) int {
	return common.GetInt(ctx, countKey(subject))
}

// Iterate returns iterator over deserialized checkpoints of the subject in
// the order of recording.
func Iterate(ctx storage.Context, subject []byte) iterator.Iterator {
	prefix := append([]byte{itemPrefix}, subject...)
	return storage.Find(ctx, prefix, storage.ValuesOnly|storage.DeserializeValues)
}

func get(ctx storage.Context, subject []byte, pos int) Checkpoint {
	data := storage.Get(ctx, itemKey(subject, pos))
	return std.Deserialize(data.([]byte)).(Checkpoint)
}

func countKey(subject []byte) []byte {
	return append([]byte{countPrefix}, subject...)
}

func itemKey(subject []byte, pos int) []byte {
	key := append([]byte{itemPrefix}, subject...)
	return append(key, []byte{
		byte((pos >> 24) & 0xff),
		byte((pos >> 16) & 0xff),
		byte((pos >> 8) & 0xff),
		byte(pos & 0xff),
	}...)
}
