package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/transfer"
)

// RegisterTransactionRoutes wires the money-movement endpoints.
func RegisterTransactionRoutes(router fiber.Router, h *transfer.Handler) {
	grp := router.Group("/transactions")
	grp.Post("/credit", h.Credit)
	grp.Post("/debit", h.Debit)
	grp.Post("/transfer", h.Transfer)
}
