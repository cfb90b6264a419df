package wallet

import "time"

// Wallet is a stored value account owned by exactly one user. Balance is in
// minor currency units and never negative after a committed operation; it is
// mutated only through Repository.UpdateBalance.
type Wallet struct {
	ID        string
	OwnerID   string
	Balance   int64
	CreatedAt time.Time
}
