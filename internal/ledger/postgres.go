package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zuri-wallet/zuri_wallet/internal/infra"
)

// PostgresLedger persists transaction records in PostgreSQL. Insertion order
// is preserved through a sequence column, so FindForWallet never re-sorts.
type PostgresLedger struct {
	db infra.Querier
}

// NewPostgresLedger constructs a Postgres-backed ledger. It runs against the
// pool for reads and against a pgx.Tx when appending inside an atomic unit.
func NewPostgresLedger(db infra.Querier) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Append stores a record with a fresh id and timestamp.
func (l *PostgresLedger) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.Amount <= 0 {
		return Record{}, ErrAmountNotPositive
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	var sender, receiver *uuid.UUID
	if rec.HasSender() {
		id, err := uuid.Parse(rec.SenderWalletID)
		if err != nil {
			return Record{}, err
		}
		sender = &id
	}
	if rec.HasReceiver() {
		id, err := uuid.Parse(rec.ReceiverWalletID)
		if err != nil {
			return Record{}, err
		}
		receiver = &id
	}

	_, err := l.db.Exec(ctx, `INSERT INTO transactions (id, sender_wallet_id, receiver_wallet_id, amount, kind, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, uuid.MustParse(rec.ID), sender, receiver, rec.Amount, string(rec.Kind), rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// FindForWallet returns all records touching the wallet in insertion order.
func (l *PostgresLedger) FindForWallet(ctx context.Context, walletID string) ([]Record, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, err
	}

	rows, err := l.db.Query(ctx, `SELECT id, sender_wallet_id, receiver_wallet_id, amount, kind, created_at
        FROM transactions
        WHERE sender_wallet_id = $1 OR receiver_wallet_id = $1
        ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			recID     uuid.UUID
			sender    *uuid.UUID
			receiver  *uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&recID, &sender, &receiver, &rec.Amount, &rec.Kind, &createdAt); err != nil {
			return nil, err
		}
		rec.ID = recID.String()
		if sender != nil {
			rec.SenderWalletID = sender.String()
		}
		if receiver != nil {
			rec.ReceiverWalletID = receiver.String()
		}
		rec.CreatedAt = createdAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
