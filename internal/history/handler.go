package history

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/identity"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// Handler serves the dashboard view of a wallet's history.
type Handler struct {
	svc     *Service
	wallets *wallet.Service
}

// NewHandler constructs a history handler.
func NewHandler(svc *Service, wallets *wallet.Service) *Handler {
	return &Handler{svc: svc, wallets: wallets}
}

type entryResponse struct {
	ID                   string `json:"id"`
	Amount               int64  `json:"amount"`
	Kind                 string `json:"kind"`
	Timestamp            string `json:"timestamp"`
	Incoming             bool   `json:"incoming"`
	SenderName           string `json:"sender_name"`
	SenderWalletID       string `json:"sender_wallet_id"`
	ReceiverName         string `json:"receiver_name"`
	ReceiverWalletID     string `json:"receiver_wallet_id"`
	CounterpartyName     string `json:"counterparty_name"`
	CounterpartyWalletID string `json:"counterparty_wallet_id"`
	Description          string `json:"description"`
}

type dashboardResponse struct {
	Name         string          `json:"name"`
	WalletID     string          `json:"wallet_id"`
	Balance      int64           `json:"balance"`
	Transactions []entryResponse `json:"transactions"`
}

// Dashboard returns the authenticated user's wallet summary and history.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	w, err := h.wallets.GetByOwner(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "wallet not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	st, err := h.svc.Statement(c.UserContext(), w)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	entries := make([]entryResponse, 0, len(st.Entries))
	for _, e := range st.Entries {
		entries = append(entries, entryResponse{
			ID:                   e.RecordID,
			Amount:               e.Amount,
			Kind:                 string(e.Kind),
			Timestamp:            e.Timestamp,
			Incoming:             e.Incoming,
			SenderName:           e.SenderName,
			SenderWalletID:       e.SenderWalletID,
			ReceiverName:         e.ReceiverName,
			ReceiverWalletID:     e.ReceiverWalletID,
			CounterpartyName:     e.CounterpartyName,
			CounterpartyWalletID: e.CounterpartyWalletID,
			Description:          e.Description,
		})
	}

	return c.Status(http.StatusOK).JSON(dashboardResponse{
		Name:         st.OwnerName,
		WalletID:     st.WalletID,
		Balance:      st.Balance,
		Transactions: entries,
	})
}
