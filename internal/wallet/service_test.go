package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateStartsAtZeroBalance(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	ownerID := uuid.NewString()
	w, err := svc.Create(ctx, ownerID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.ID == "" {
		t.Fatal("expected wallet id to be assigned")
	}
	if w.OwnerID != ownerID {
		t.Fatalf("expected owner %s, got %s", ownerID, w.OwnerID)
	}
	if w.Balance != 0 {
		t.Fatalf("expected zero starting balance, got %d", w.Balance)
	}
	if w.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp to be set")
	}
}

func TestGetByOwner(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	ownerID := uuid.NewString()
	created, err := svc.Create(ctx, ownerID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := svc.GetByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("get by owner: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected wallet %s, got %s", created.ID, found.ID)
	}

	if _, err := svc.GetByOwner(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown owner, got %v", err)
	}
}

func TestGetUnknownWallet(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Get(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
