package ledger

import (
	"context"
	"testing"
)

func TestMemoryLedger_AppendAssignsIDAndTimestamp(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	rec, err := l.Append(ctx, Record{ReceiverWalletID: "w1", Amount: 100, Kind: KindCredited})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected an assigned timestamp")
	}
	if rec.HasSender() {
		t.Fatal("deposit must not carry a sender")
	}
}

func TestMemoryLedger_RejectsNonPositiveAmount(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	for _, amount := range []int64{0, -5} {
		if _, err := l.Append(ctx, Record{ReceiverWalletID: "w1", Amount: amount, Kind: KindCredited}); err != ErrAmountNotPositive {
			t.Fatalf("amount %d: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}
	records, _ := l.FindForWallet(ctx, "w1")
	if len(records) != 0 {
		t.Fatalf("rejected appends must not store records, got %d", len(records))
	}
}

func TestMemoryLedger_FindForWalletInsertionOrder(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	first, _ := l.Append(ctx, Record{ReceiverWalletID: "w1", Amount: 100, Kind: KindCredited})
	l.Append(ctx, Record{ReceiverWalletID: "w2", Amount: 300, Kind: KindCredited})
	second, _ := l.Append(ctx, Record{SenderWalletID: "w1", Amount: 40, Kind: KindDebited})
	third, _ := l.Append(ctx, Record{SenderWalletID: "w1", ReceiverWalletID: "w2", Amount: 25, Kind: KindDebited})

	records, err := l.FindForWallet(ctx, "w1")
	if err != nil {
		t.Fatalf("find for wallet: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records for w1, got %d", len(records))
	}
	for i, want := range []string{first.ID, second.ID, third.ID} {
		if records[i].ID != want {
			t.Fatalf("record %d out of order: got %s want %s", i, records[i].ID, want)
		}
	}
}

func TestMemoryLedger_SnapshotRestore(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	l.Append(ctx, Record{ReceiverWalletID: "w1", Amount: 100, Kind: KindCredited})
	snap := l.Snapshot()
	l.Append(ctx, Record{ReceiverWalletID: "w1", Amount: 200, Kind: KindCredited})

	l.Restore(snap)

	records, _ := l.FindForWallet(ctx, "w1")
	if len(records) != 1 {
		t.Fatalf("expected restore to drop the later append, got %d records", len(records))
	}
}
