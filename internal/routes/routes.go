package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zuri-wallet/zuri_wallet/internal/auth"
	"github.com/zuri-wallet/zuri_wallet/internal/config"
	"github.com/zuri-wallet/zuri_wallet/internal/history"
	"github.com/zuri-wallet/zuri_wallet/internal/identity"
	"github.com/zuri-wallet/zuri_wallet/internal/ledger"
	"github.com/zuri-wallet/zuri_wallet/internal/middleware"
	"github.com/zuri-wallet/zuri_wallet/internal/notification"
	"github.com/zuri-wallet/zuri_wallet/internal/transfer"
	"github.com/zuri-wallet/zuri_wallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the durable backends are swapped for in-memory ones, which is only allowed
// in dev.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backends
	var (
		walletRepo    wallet.Repository
		records       ledger.Ledger
		identityRepo  identity.Repository
		atomicBackend transfer.Store
	)
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
		records = ledger.NewPostgresLedger(d.DB)
		identityRepo = identity.NewPostgresRepository(d.DB)
		atomicBackend = transfer.NewPostgresStore(d.DB)
	} else {
		// The memory store must mutate the same instances the read paths use.
		memWallets := wallet.NewMemoryRepository()
		memRecords := ledger.NewMemoryLedger()
		walletRepo = memWallets
		records = memRecords
		identityRepo = identity.NewMemoryRepository()
		atomicBackend = transfer.NewMemoryStore(memWallets, memRecords)
	}

	// Services and handlers
	walletSvc := wallet.NewService(walletRepo)
	identitySvc := identity.NewService(identityRepo)
	notifier := notification.NewLoggerNotifier(d.Logger)
	engine := transfer.NewEngine(atomicBackend)
	historySvc := history.NewService(records, walletRepo, identityRepo)

	authSvc := auth.NewService(d.Cfg, identityRepo)
	authHandler := auth.NewHandler(identitySvc, authSvc, walletSvc)
	transactionHandler := transfer.NewHandler(engine, walletSvc, notifier)
	walletHandler := wallet.NewHandler(walletSvc)
	dashboardHandler := history.NewHandler(historySvc, walletSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMinute)
	jwtmw := middleware.JWTAuth(authSvc, identityRepo)
	RegisterAuthRoutes(api, authHandler, rateLimiter, jwtmw)

	// Protected routes
	protected := api.Group("", jwtmw)
	protected.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		user, err := identityRepo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":    user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"name":       user.Name,
			"created_at": user.CreatedAt,
		})
	})
	RegisterWalletRoutes(protected, walletHandler)
	RegisterTransactionRoutes(protected, transactionHandler)
	RegisterDashboardRoute(protected, dashboardHandler)

	return nil
}
