// Package vaultconst contains failure messages of the token vault contract.
package vaultconst

const (
	ErrReleaseTimeInPast = "release time must be in the future"
	ErrNotReleased       = "release time is not reached"
	ErrNothingLocked     = "no locked balance"
	ErrInvalidAmount     = "amount must be positive"
	ErrWrongToken        = "only vault token is accepted"
	ErrDepositFailed     = "token transfer to the vault failed"
	ErrReleaseFailed     = "token transfer from the vault failed"
	ErrVaultBeneficiary  = "vault can't be a beneficiary"
)
