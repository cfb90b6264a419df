package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// RegisterWalletRoutes wires wallet lookup endpoints.
func RegisterWalletRoutes(router fiber.Router, h *wallet.Handler) {
	router.Get("/wallets/:userId", h.ByOwner)
}
