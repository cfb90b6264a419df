package transfer

import (
	"context"
	"sync"

	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// MemoryStore provides atomic units over the in-memory wallet and ledger
// backends for dev mode and unit tests. One mutex serializes all units;
// snapshots taken before fn runs are restored when it fails, so a failed
// unit leaves no partial state behind.
type MemoryStore struct {
	mu      sync.Mutex
	wallets *wallet.MemoryRepository
	records *ledger.MemoryLedger
}

// NewMemoryStore wraps the given in-memory backends.
func NewMemoryStore(wallets *wallet.MemoryRepository, records *ledger.MemoryLedger) *MemoryStore {
	return &MemoryStore{wallets: wallets, records: records}
}

// Atomically executes fn under the store mutex with rollback on failure.
func (s *MemoryStore) Atomically(ctx context.Context, fn UnitFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	walletSnap := s.wallets.Snapshot()
	recordSnap := s.records.Snapshot()

	if err := fn(ctx, s.wallets, s.records); err != nil {
		s.wallets.Restore(walletSnap)
		s.records.Restore(recordSnap)
		return err
	}
	return nil
}
