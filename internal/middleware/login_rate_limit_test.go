package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupLoginApp(t *testing.T, maxPerMin int) (*fiber.App, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Post("/login", LoginRateLimit(cache, maxPerMin), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}

	return app, mr, cleanup
}

func attemptLogin(t *testing.T, app *fiber.App, username string) int {
	t.Helper()
	body := strings.NewReader(`{"username":"` + username + `"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/login", body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestLoginRateLimitBlocksExcessAttempts(t *testing.T) {
	app, _, cleanup := setupLoginApp(t, 3)
	defer cleanup()

	for i := 0; i < 3; i++ {
		if status := attemptLogin(t, app, "amina"); status != fiber.StatusOK {
			t.Fatalf("attempt %d: expected %d got %d", i+1, fiber.StatusOK, status)
		}
	}

	if status := attemptLogin(t, app, "amina"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected %d got %d", fiber.StatusTooManyRequests, status)
	}
}

func TestLoginRateLimitIsPerUsername(t *testing.T) {
	app, _, cleanup := setupLoginApp(t, 1)
	defer cleanup()

	if status := attemptLogin(t, app, "amina"); status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
	if status := attemptLogin(t, app, "kesi"); status != fiber.StatusOK {
		t.Fatalf("other username should not be throttled, got %d", status)
	}
}

func TestLoginRateLimitResetsAfterWindow(t *testing.T) {
	app, mr, cleanup := setupLoginApp(t, 1)
	defer cleanup()

	if status := attemptLogin(t, app, "amina"); status != fiber.StatusOK {
		t.Fatalf("expected %d got %d", fiber.StatusOK, status)
	}
	if status := attemptLogin(t, app, "amina"); status != fiber.StatusTooManyRequests {
		t.Fatalf("expected %d got %d", fiber.StatusTooManyRequests, status)
	}

	mr.FastForward(time.Minute + time.Second)

	if status := attemptLogin(t, app, "amina"); status != fiber.StatusOK {
		t.Fatalf("expected counter to reset after window, got %d", status)
	}
}

func TestLoginRateLimitNoopWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Post("/login", LoginRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	for i := 0; i < 5; i++ {
		if status := attemptLogin(t, app, "amina"); status != fiber.StatusOK {
			t.Fatalf("expected pass-through without cache, got %d", status)
		}
	}
}
