package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

type hashRecord struct {
	Hash interop.Hash160
}

// SetHash160 puts script hash into contract storage. The hash must be read
// back with GetHash160.
func SetHash160(ctx storage.Context, key any, h interop.Hash160) {
	SetSerialized(ctx, key, hashRecord{Hash: h})
}

// GetHash160 returns script hash stored by SetHash160 as the same byte
// string it was put with.
func GetHash160(ctx storage.Context, key any) interop.Hash160 {
	data := storage.Get(ctx, key).([]byte)
	rec := std.Deserialize(data).(hashRecord)
	return rec.Hash
}

// GetInt returns integer stored by the key or 0 if there is no such key.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data == nil {
		return 0
	}

	return convert.ToInteger(data)
}

// PutInt stores non-zero integer by the key and removes the key otherwise,
// so that zero values do not occupy storage.
func PutInt(ctx storage.Context, key any, value int) {
	if value == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, value)
}

// IsSet checks whether flag stored by the key is raised. Flags are
// represented by the key presence.
func IsSet(ctx storage.Context, key any) bool {
	return storage.Get(ctx, key) != nil
}

// SetFlag raises or clears flag stored by the key.
func SetFlag(ctx storage.Context, key any, value bool) {
	if value {
		storage.Put(ctx, key, []byte{1})
		return
	}

	storage.Delete(ctx, key)
}
