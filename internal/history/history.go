// Package history classifies a wallet's ledger records from that wallet's
// point of view and shapes them into a statement: direction, counterparty
// and a human description per record, plus the wallet summary.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/zuri-wallet/zuri_wallet/internal/identity"
	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// SystemParty labels the absent side of a deposit or withdrawal.
const SystemParty = "System"

// Entry is one ledger record viewed from the statement wallet's perspective.
type Entry struct {
	RecordID             string
	Amount               int64
	Kind                 ledger.Kind
	Timestamp            string
	Incoming             bool
	SenderName           string
	SenderWalletID       string
	ReceiverName         string
	ReceiverWalletID     string
	CounterpartyName     string
	CounterpartyWalletID string
	Description          string
}

// Statement is the ordered history of a wallet plus its summary.
type Statement struct {
	OwnerName string
	WalletID  string
	Balance   int64
	Entries   []Entry
}

// Service builds statements from the ledger, resolving counterparty display
// names through the wallet and user stores.
type Service struct {
	records ledger.Ledger
	wallets wallet.Repository
	users   identity.Repository
}

// NewService constructs a history service.
func NewService(records ledger.Ledger, wallets wallet.Repository, users identity.Repository) *Service {
	return &Service{records: records, wallets: wallets, users: users}
}

// Statement returns the wallet's history in ledger order. Each wallet sees
// only its own half of a transfer pair: CREDITED records where it is the
// receiver and DEBITED records where it is the sender.
func (s *Service) Statement(ctx context.Context, w wallet.Wallet) (Statement, error) {
	owner, err := s.users.FindByID(ctx, w.OwnerID)
	if err != nil {
		return Statement{}, fmt.Errorf("resolve owner: %w", err)
	}

	records, err := s.records.FindForWallet(ctx, w.ID)
	if err != nil {
		return Statement{}, err
	}

	names := map[string]string{w.ID: owner.Name}
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		if !belongsTo(rec, w.ID) {
			continue
		}
		entry, err := s.buildEntry(ctx, rec, w.ID, names)
		if err != nil {
			return Statement{}, err
		}
		entries = append(entries, entry)
	}

	return Statement{
		OwnerName: owner.Name,
		WalletID:  w.ID,
		Balance:   w.Balance,
		Entries:   entries,
	}, nil
}

// belongsTo applies the perspective filter: a CREDITED record belongs to its
// receiver, a DEBITED record to its sender. The other half of a transfer
// pair is the counterparty's record, not this wallet's.
func belongsTo(rec ledger.Record, walletID string) bool {
	switch rec.Kind {
	case ledger.KindCredited:
		return rec.ReceiverWalletID == walletID
	case ledger.KindDebited:
		return rec.SenderWalletID == walletID
	default:
		return false
	}
}

func (s *Service) buildEntry(ctx context.Context, rec ledger.Record, walletID string, names map[string]string) (Entry, error) {
	entry := Entry{
		RecordID:         rec.ID,
		Amount:           rec.Amount,
		Kind:             rec.Kind,
		Timestamp:        rec.CreatedAt.Format(time.RFC3339Nano),
		Incoming:         rec.ReceiverWalletID == walletID,
		SenderName:       SystemParty,
		SenderWalletID:   SystemParty,
		ReceiverName:     SystemParty,
		ReceiverWalletID: SystemParty,
	}

	if rec.HasSender() {
		name, err := s.resolveName(ctx, rec.SenderWalletID, names)
		if err != nil {
			return Entry{}, err
		}
		entry.SenderName = name
		entry.SenderWalletID = rec.SenderWalletID
	}
	if rec.HasReceiver() {
		name, err := s.resolveName(ctx, rec.ReceiverWalletID, names)
		if err != nil {
			return Entry{}, err
		}
		entry.ReceiverName = name
		entry.ReceiverWalletID = rec.ReceiverWalletID
	}

	if entry.Incoming {
		entry.CounterpartyName = entry.SenderName
		entry.CounterpartyWalletID = entry.SenderWalletID
	} else {
		entry.CounterpartyName = entry.ReceiverName
		entry.CounterpartyWalletID = entry.ReceiverWalletID
	}

	switch rec.Kind {
	case ledger.KindCredited:
		if rec.HasSender() && rec.SenderWalletID != walletID {
			entry.Description = "Received from " + entry.SenderName
		} else {
			entry.Description = "Money Added"
		}
	case ledger.KindDebited:
		if rec.HasReceiver() && rec.ReceiverWalletID != walletID {
			entry.Description = "Sent to " + entry.ReceiverName
		} else {
			entry.Description = "Money Withdrawn"
		}
	}

	return entry, nil
}

// resolveName maps a wallet id to its owner's display name, memoizing per
// statement build.
func (s *Service) resolveName(ctx context.Context, walletID string, names map[string]string) (string, error) {
	if name, ok := names[walletID]; ok {
		return name, nil
	}
	w, err := s.wallets.FindByID(ctx, walletID)
	if err != nil {
		return "", fmt.Errorf("resolve counterparty wallet %s: %w", walletID, err)
	}
	owner, err := s.users.FindByID(ctx, w.OwnerID)
	if err != nil {
		return "", fmt.Errorf("resolve counterparty owner for wallet %s: %w", walletID, err)
	}
	names[walletID] = owner.Name
	return owner.Name, nil
}
