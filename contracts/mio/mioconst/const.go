// Package mioconst contains Mio token metadata and failure messages shared
// between the contract and its clients.
package mioconst

const (
	// Name is a human-readable name of the token.
	Name = "Mio Token"
	// Symbol is a NEP-17 ticker symbol of the token.
	Symbol = "#MIO"
	// Decimals is a NEP-17 token precision.
	Decimals = 18
)

const (
	ErrPaused            = "token is paused"
	ErrNotPaused         = "token is not paused"
	ErrMintingFinished   = "minting is finished"
	ErrInvalidRecipient  = "invalid recipient"
	ErrInvalidSender     = "invalid sender"
	ErrInvalidOwner      = "invalid owner"
	ErrNegativeAmount    = "negative amount"
	ErrLengthMismatch    = "recipients and amounts length mismatch"
	ErrAllowanceChange   = "allowance must be reset to zero before change"
	ErrInsufficientFunds = "insufficient funds"
	ErrReclaimSelf       = "can't reclaim own token"
	ErrReclaimFailed     = "reclaim transfer failed"
)
