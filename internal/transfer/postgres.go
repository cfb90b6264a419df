package transfer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// PostgresStore runs each unit inside one pgx transaction. Row locks taken
// via the wallet repository's LockByID serialize concurrent operations on
// the same wallet; the deferred rollback guarantees no partial balance
// change or record survives a failed unit.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed atomic store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Atomically executes fn within a database transaction.
func (s *PostgresStore) Atomically(ctx context.Context, fn UnitFunc) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := fn(ctx, wallet.NewPostgresRepository(tx), ledger.NewPostgresLedger(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
