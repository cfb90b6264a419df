package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryLedger is a concurrency-safe in-memory ledger for dev mode and unit
// tests. Records live in a slice, so insertion order is the storage order.
type MemoryLedger struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Append stores a record with a fresh id and timestamp.
func (l *MemoryLedger) Append(_ context.Context, rec Record) (Record, error) {
	if rec.Amount <= 0 {
		return Record{}, ErrAmountNotPositive
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	l.records = append(l.records, rec)
	return rec, nil
}

// FindForWallet returns all records touching the wallet in insertion order.
func (l *MemoryLedger) FindForWallet(_ context.Context, walletID string) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Record
	for _, rec := range l.records {
		if rec.SenderWalletID == walletID || rec.ReceiverWalletID == walletID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Snapshot copies the current records so an atomic unit can roll back on
// failure. Used by the in-memory transfer store only.
func (l *MemoryLedger) Snapshot() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := make([]Record, len(l.records))
	copy(snap, l.records)
	return snap
}

// Restore replaces the current records with a previously taken snapshot.
func (l *MemoryLedger) Restore(snap []Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make([]Record, len(snap))
	copy(l.records, snap)
}
