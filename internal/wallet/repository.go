package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zuri-wallet/zuri_wallet/internal/infra"
)

// ErrNotFound indicates a wallet lookup miss.
var ErrNotFound = errors.New("wallet not found")

// Repository persists wallets. It is a pure read/write primitive: the caller
// supplies fully computed balances and UpdateBalance performs no validation.
type Repository interface {
	Create(ctx context.Context, w Wallet) error
	FindByID(ctx context.Context, id string) (Wallet, error)
	FindByOwner(ctx context.Context, ownerID string) (Wallet, error)
	// LockByID reads a wallet while holding its row lock for the remainder
	// of the surrounding atomic unit. Outside a transaction it behaves like
	// FindByID.
	LockByID(ctx context.Context, id string) (Wallet, error)
	// UpdateBalance writes the supplied balance and returns the committed
	// wallet.
	UpdateBalance(ctx context.Context, w Wallet, newBalance int64) (Wallet, error)
}

// PostgresRepository stores wallets in PostgreSQL. It runs against the pool
// for plain reads and against a pgx.Tx inside an atomic unit.
type PostgresRepository struct {
	db infra.Querier
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db infra.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(w.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, owner_id, balance, created_at)
        VALUES ($1, $2, $3, $4)`, walletID, ownerID, w.Balance, w.CreatedAt.UTC())
	return err
}

// FindByID fetches a wallet by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Wallet, error) {
	return r.scanOne(ctx, `SELECT id, owner_id, balance, created_at FROM wallets WHERE id = $1`, id)
}

// FindByOwner fetches the wallet belonging to the given user.
func (r *PostgresRepository) FindByOwner(ctx context.Context, ownerID string) (Wallet, error) {
	return r.scanOne(ctx, `SELECT id, owner_id, balance, created_at FROM wallets WHERE owner_id = $1`, ownerID)
}

// LockByID reads the wallet with FOR UPDATE so concurrent operations on the
// same wallet serialize on its row for the duration of the transaction.
func (r *PostgresRepository) LockByID(ctx context.Context, id string) (Wallet, error) {
	return r.scanOne(ctx, `SELECT id, owner_id, balance, created_at FROM wallets WHERE id = $1 FOR UPDATE`, id)
}

// UpdateBalance writes the caller-computed balance.
func (r *PostgresRepository) UpdateBalance(ctx context.Context, w Wallet, newBalance int64) (Wallet, error) {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return Wallet{}, err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`, newBalance, walletID)
	if err != nil {
		return Wallet{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Wallet{}, ErrNotFound
	}
	w.Balance = newBalance
	return w, nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query, arg string) (Wallet, error) {
	key, err := uuid.Parse(arg)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, query, key)
	var (
		w         Wallet
		idVal     uuid.UUID
		ownerID   uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&idVal, &ownerID, &w.Balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.ID = idVal.String()
	w.OwnerID = ownerID.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}
