package wallet

import (
	"context"
	"errors"
	"sync"
)

// MemoryRepository is a concurrency-safe in-memory wallet store for dev mode
// and unit tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Wallet
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{storage: make(map[string]Wallet)}
}

// Create stores a new wallet.
func (r *MemoryRepository) Create(_ context.Context, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[w.ID]; exists {
		return errors.New("wallet exists")
	}
	r.storage[w.ID] = w
	return nil
}

// FindByID returns the wallet with the given id.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.storage[id]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w, nil
}

// FindByOwner returns the wallet owned by the given user.
func (r *MemoryRepository) FindByOwner(_ context.Context, ownerID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.storage {
		if w.OwnerID == ownerID {
			return w, nil
		}
	}
	return Wallet{}, ErrNotFound
}

// LockByID behaves like FindByID; serialization of in-memory atomic units is
// provided by the transfer.MemoryStore mutex.
func (r *MemoryRepository) LockByID(ctx context.Context, id string) (Wallet, error) {
	return r.FindByID(ctx, id)
}

// UpdateBalance writes the caller-computed balance.
func (r *MemoryRepository) UpdateBalance(_ context.Context, w Wallet, newBalance int64) (Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.storage[w.ID]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	stored.Balance = newBalance
	r.storage[w.ID] = stored
	return stored, nil
}

// Snapshot copies the current state so an atomic unit can roll back on
// failure. Used by the in-memory transfer store only.
func (r *MemoryRepository) Snapshot() map[string]Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]Wallet, len(r.storage))
	for id, w := range r.storage {
		snap[id] = w
	}
	return snap
}

// Restore replaces the current state with a previously taken snapshot.
func (r *MemoryRepository) Restore(snap map[string]Wallet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make(map[string]Wallet, len(snap))
	for id, w := range snap {
		r.storage[id] = w
	}
}
