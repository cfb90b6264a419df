package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// UnitFunc runs inside one atomic unit. The wallet repository and ledger it
// receives are bound to that unit: every balance read, balance write and
// record append either commits together or leaves no trace.
type UnitFunc func(ctx context.Context, wallets wallet.Repository, records ledger.Ledger) error

// Store provides the scoped atomic unit the engine executes operations in.
type Store interface {
	Atomically(ctx context.Context, fn UnitFunc) error
}

// Engine orchestrates credits, debits and transfers. It validates
// preconditions, mutates balances through the wallet repository and appends
// the resulting records, all within one atomic unit per operation. The
// engine itself holds no state and emits no logs; observability is the
// caller's concern.
type Engine struct {
	store Store
}

// NewEngine builds a transfer engine on top of the given atomic store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Credit adds amount to the wallet and appends one CREDITED record carrying
// only the receiver.
func (e *Engine) Credit(ctx context.Context, walletID string, amount int64) (ledger.Record, error) {
	if amount <= 0 {
		return ledger.Record{}, ledger.ErrAmountNotPositive
	}

	var rec ledger.Record
	err := e.store.Atomically(ctx, func(ctx context.Context, wallets wallet.Repository, records ledger.Ledger) error {
		w, err := wallets.LockByID(ctx, walletID)
		if err != nil {
			return err
		}
		if _, err := wallets.UpdateBalance(ctx, w, w.Balance+amount); err != nil {
			return err
		}
		rec, err = records.Append(ctx, ledger.Record{
			ReceiverWalletID: w.ID,
			Amount:           amount,
			Kind:             ledger.KindCredited,
		})
		return err
	})
	if err != nil {
		return ledger.Record{}, classify(err)
	}
	return rec, nil
}

// Debit removes amount from the wallet and appends one DEBITED record
// carrying only the sender. Fails with ErrInsufficientFunds when the balance
// cannot cover the amount.
func (e *Engine) Debit(ctx context.Context, walletID string, amount int64) (ledger.Record, error) {
	if amount <= 0 {
		return ledger.Record{}, ledger.ErrAmountNotPositive
	}

	var rec ledger.Record
	err := e.store.Atomically(ctx, func(ctx context.Context, wallets wallet.Repository, records ledger.Ledger) error {
		w, err := wallets.LockByID(ctx, walletID)
		if err != nil {
			return err
		}
		if w.Balance < amount {
			return ErrInsufficientFunds
		}
		if _, err := wallets.UpdateBalance(ctx, w, w.Balance-amount); err != nil {
			return err
		}
		rec, err = records.Append(ctx, ledger.Record{
			SenderWalletID: w.ID,
			Amount:         amount,
			Kind:           ledger.KindDebited,
		})
		return err
	})
	if err != nil {
		return ledger.Record{}, classify(err)
	}
	return rec, nil
}

// TransferInput names the wallets and amount of a wallet-to-wallet transfer.
// The sender wallet is always resolved by the caller and passed explicitly.
type TransferInput struct {
	SenderWalletID   string
	ReceiverWalletID string
	Amount           int64
}

// TransferResult carries the record pair and committed balances of a
// successful transfer.
type TransferResult struct {
	Debit           ledger.Record
	Credit          ledger.Record
	SenderBalance   int64
	ReceiverBalance int64
}

// Transfer moves amount between two wallets and appends a linked
// DEBITED/CREDITED pair, each record carrying both wallet ids. The missing
// side is named in the not-found error.
func (e *Engine) Transfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	if in.Amount <= 0 {
		return TransferResult{}, ledger.ErrAmountNotPositive
	}
	if in.SenderWalletID == in.ReceiverWalletID {
		return TransferResult{}, ErrSelfTransfer
	}

	var res TransferResult
	err := e.store.Atomically(ctx, func(ctx context.Context, wallets wallet.Repository, records ledger.Ledger) error {
		sender, receiver, err := lockPair(ctx, wallets, in.SenderWalletID, in.ReceiverWalletID)
		if err != nil {
			return err
		}

		if sender.Balance < in.Amount {
			return ErrInsufficientFunds
		}

		sender, err = wallets.UpdateBalance(ctx, sender, sender.Balance-in.Amount)
		if err != nil {
			return err
		}
		receiver, err = wallets.UpdateBalance(ctx, receiver, receiver.Balance+in.Amount)
		if err != nil {
			return err
		}

		res.Debit, err = records.Append(ctx, ledger.Record{
			SenderWalletID:   sender.ID,
			ReceiverWalletID: receiver.ID,
			Amount:           in.Amount,
			Kind:             ledger.KindDebited,
		})
		if err != nil {
			return err
		}
		res.Credit, err = records.Append(ctx, ledger.Record{
			SenderWalletID:   sender.ID,
			ReceiverWalletID: receiver.ID,
			Amount:           in.Amount,
			Kind:             ledger.KindCredited,
		})
		if err != nil {
			return err
		}

		res.SenderBalance = sender.Balance
		res.ReceiverBalance = receiver.Balance
		return nil
	})
	if err != nil {
		return TransferResult{}, classify(err)
	}
	return res, nil
}

// lockPair acquires both wallet rows in lexicographic id order so two
// concurrent opposing transfers cannot deadlock, then maps the locked rows
// back to sender and receiver.
func lockPair(ctx context.Context, wallets wallet.Repository, senderID, receiverID string) (sender, receiver wallet.Wallet, err error) {
	first, second := senderID, receiverID
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]wallet.Wallet, 2)
	for _, id := range []string{first, second} {
		w, err := wallets.LockByID(ctx, id)
		if err != nil {
			if errors.Is(err, wallet.ErrNotFound) {
				side := "sender"
				if id == receiverID {
					side = "receiver"
				}
				return wallet.Wallet{}, wallet.Wallet{}, fmt.Errorf("%s wallet %s: %w", side, id, wallet.ErrNotFound)
			}
			return wallet.Wallet{}, wallet.Wallet{}, err
		}
		locked[id] = w
	}

	return locked[senderID], locked[receiverID], nil
}

// classify leaves the recoverable domain conditions untouched and wraps
// everything else as a store failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wallet.ErrNotFound),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
