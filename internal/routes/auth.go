package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zuri-wallet/zuri_wallet/internal/auth"
)

// RegisterAuthRoutes wires registration, login and token lifecycle endpoints.
// Login is rate limited; logout requires a valid access token.
func RegisterAuthRoutes(router fiber.Router, h *auth.Handler, rateLimiter fiber.Handler, jwtmw fiber.Handler) {
	grp := router.Group("/auth")
	grp.Post("/register", h.Register)
	grp.Post("/login", rateLimiter, h.Login)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/logout", jwtmw, h.Logout)
}
