package transfer

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/notification"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// Handler exposes the money-movement endpoints.
type Handler struct {
	engine   *Engine
	wallets  *wallet.Service
	notifier notification.Notifier
}

// NewHandler constructs a transaction handler.
func NewHandler(engine *Engine, wallets *wallet.Service, notifier notification.Notifier) *Handler {
	return &Handler{engine: engine, wallets: wallets, notifier: notifier}
}

type amountRequest struct {
	WalletID string `json:"wallet_id"`
	Amount   int64  `json:"amount"`
}

type recordResponse struct {
	ID               string `json:"id"`
	SenderWalletID   string `json:"sender_wallet_id,omitempty"`
	ReceiverWalletID string `json:"receiver_wallet_id,omitempty"`
	Amount           int64  `json:"amount"`
	Kind             string `json:"kind"`
	Timestamp        string `json:"timestamp"`
}

func toRecordResponse(rec ledger.Record) recordResponse {
	return recordResponse{
		ID:               rec.ID,
		SenderWalletID:   rec.SenderWalletID,
		ReceiverWalletID: rec.ReceiverWalletID,
		Amount:           rec.Amount,
		Kind:             string(rec.Kind),
		Timestamp:        rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

// Credit adds funds to a wallet.
func (h *Handler) Credit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.engine.Credit(c.UserContext(), req.WalletID, req.Amount)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusCreated).JSON(toRecordResponse(rec))
}

// Debit withdraws funds from a wallet.
func (h *Handler) Debit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.engine.Debit(c.UserContext(), req.WalletID, req.Amount)
	if err != nil {
		return httpError(err)
	}
	return c.Status(http.StatusCreated).JSON(toRecordResponse(rec))
}

type transferRequest struct {
	ReceiverWalletID string `json:"receiver_wallet_id"`
	Amount           int64  `json:"amount"`
}

// Transfer moves funds from the authenticated caller's wallet to the
// receiver. The sender wallet is resolved here and passed explicitly into
// the engine.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	senderWallet, err := h.wallets.GetByOwner(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "sender wallet not found")
	}

	res, err := h.engine.Transfer(c.UserContext(), TransferInput{
		SenderWalletID:   senderWallet.ID,
		ReceiverWalletID: req.ReceiverWalletID,
		Amount:           req.Amount,
	})
	if err != nil {
		return httpError(err)
	}

	if h.notifier != nil {
		if receiver, err := h.wallets.Get(c.UserContext(), req.ReceiverWalletID); err == nil {
			_ = h.notifier.Send(c.UserContext(), notification.Message{
				Kind:        notification.KindTransfer,
				Destination: receiver.OwnerID,
				Body:        fmt.Sprintf("You received %d from wallet %s", req.Amount, senderWallet.ID),
			})
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"debit":            toRecordResponse(res.Debit),
		"credit":           toRecordResponse(res.Credit),
		"sender_balance":   res.SenderBalance,
		"receiver_balance": res.ReceiverBalance,
	})
}

// httpError maps the engine's error taxonomy to HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, wallet.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, "insufficient funds")
	case errors.Is(err, ErrSelfTransfer), errors.Is(err, ledger.ErrAmountNotPositive):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, "storage unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
