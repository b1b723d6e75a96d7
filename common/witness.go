package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// by a particular account but was not.
	ErrWitnessFailed = "witness check failed"
	// ErrInvalidHash appears when passed account or contract hash has
	// wrong length.
	ErrInvalidHash = "invalid script hash length"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// CheckHash panics with ErrInvalidHash if h is not a valid script hash.
func CheckHash(h interop.Hash160) {
	if len(h) != interop.Hash160Len {
		panic(ErrInvalidHash)
	}
}

// IsZeroHash checks whether all bytes of h are zero.
func IsZeroHash(h interop.Hash160) bool {
	for i := 0; i < len(h); i++ { //nolint:intrange // Not supported by NeoGo
		if h[i] != 0 {
			return false
		}
	}

	return true
}
