package transfer

import "errors"

var (
	// ErrInsufficientFunds occurs when a debit or transfer exceeds the
	// sender wallet's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfTransfer rejects transfers where sender and receiver are the
	// same wallet.
	ErrSelfTransfer = errors.New("sender and receiver wallets must differ")

	// ErrStoreUnavailable wraps unexpected storage failures so callers can
	// distinguish them from the recoverable domain conditions.
	ErrStoreUnavailable = errors.New("store unavailable")
)
