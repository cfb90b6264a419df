package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/history"
)

// RegisterDashboardRoute wires the wallet history dashboard.
func RegisterDashboardRoute(router fiber.Router, h *history.Handler) {
	router.Get("/dashboard", h.Dashboard)
}
