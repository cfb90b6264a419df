package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrAmountNotPositive rejects records whose amount is not strictly positive.
// Every committed record carries a positive amount.
var ErrAmountNotPositive = errors.New("amount must be positive")

// Kind classifies a money movement. A wallet-to-wallet transfer is stored as
// a linked DEBITED/CREDITED pair, each half carrying both wallet ids, so no
// separate transfer kind exists.
type Kind string

const (
	// KindCredited marks an increase of the receiver wallet's balance.
	KindCredited Kind = "CREDITED"
	// KindDebited marks a decrease of the sender wallet's balance.
	KindDebited Kind = "DEBITED"
)

// Record is an immutable fact describing one money movement. Deposits carry
// only a receiver, withdrawals only a sender; transfer halves carry both.
// ID and CreatedAt are assigned at append time and never change.
type Record struct {
	ID               string
	SenderWalletID   string
	ReceiverWalletID string
	Amount           int64
	Kind             Kind
	CreatedAt        time.Time
}

// HasSender reports whether a sender wallet is attached.
func (r Record) HasSender() bool { return r.SenderWalletID != "" }

// HasReceiver reports whether a receiver wallet is attached.
func (r Record) HasReceiver() bool { return r.ReceiverWalletID != "" }

// Ledger is the append-only collection of transaction records.
type Ledger interface {
	// Append stores the record, assigning its id and timestamp, and returns
	// the stored copy. Records are never updated or deleted afterwards.
	Append(ctx context.Context, rec Record) (Record, error)
	// FindForWallet returns every record where the wallet is sender or
	// receiver, in insertion order.
	FindForWallet(ctx context.Context, walletID string) ([]Record, error)
}
