package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuri-wallet/zuri_wallet/internal/config"
	"github.com/zuri-wallet/zuri_wallet/internal/logging"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		AppName:         "ZuriWallet",
		AppEnv:          "test",
		Port:            "8080",
		JWTSecret:       "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		LoginPerMinute:  5,
	}

	app := fiber.New()
	require.NoError(t, Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(payload) > 0 {
		require.NoError(t, json.Unmarshal(payload, &decoded), "body: %s", string(payload))
	}
	return resp.StatusCode, decoded
}

type account struct {
	userID   string
	walletID string
	token    string
}

func registerAndLogin(t *testing.T, app *fiber.App, username, name string) account {
	t.Helper()
	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register",
		`{"username":"`+username+`","email":"`+username+`@example.com","name":"`+name+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, status)

	acct := account{
		userID:   body["user_id"].(string),
		walletID: body["wallet_id"].(string),
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login",
		`{"username":"`+username+`","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, status)
	acct.token = body["access_token"].(string)
	return acct
}

func TestRegisterLoginAndWalletLookup(t *testing.T) {
	app := testApp(t)
	acct := registerAndLogin(t, app, "amina", "Amina K")

	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/"+acct.userID, "", acct.token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, acct.walletID, body["id"])
	assert.Equal(t, float64(0), body["balance"])
}

func TestCreditDebitTransferFlow(t *testing.T) {
	app := testApp(t)
	alice := registerAndLogin(t, app, "alice", "Alice")
	bob := registerAndLogin(t, app, "bob", "Bob")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/credit",
		`{"wallet_id":"`+alice.walletID+`","amount":300}`, alice.token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/debit",
		`{"wallet_id":"`+alice.walletID+`","amount":50}`, alice.token)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/transfer",
		`{"receiver_wallet_id":"`+bob.walletID+`","amount":100}`, alice.token)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(150), body["sender_balance"])
	assert.Equal(t, float64(100), body["receiver_balance"])

	// Overdraw is rejected and leaves balances untouched.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/transfer",
		`{"receiver_wallet_id":"`+bob.walletID+`","amount":1000}`, alice.token)
	require.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/wallets/"+alice.userID, "", alice.token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(150), body["balance"])
}

func TestDashboardPerspectives(t *testing.T) {
	app := testApp(t)
	alice := registerAndLogin(t, app, "alice", "Alice")
	bob := registerAndLogin(t, app, "bob", "Bob")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/credit",
		`{"wallet_id":"`+alice.walletID+`","amount":200}`, alice.token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/transfer",
		`{"receiver_wallet_id":"`+bob.walletID+`","amount":75}`, alice.token)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", "", alice.token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alice", body["name"])
	txns := body["transactions"].([]any)
	require.Len(t, txns, 2)
	sent := txns[1].(map[string]any)
	assert.Equal(t, "Sent to Bob", sent["description"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", "", bob.token)
	require.Equal(t, http.StatusOK, status)
	txns = body["transactions"].([]any)
	require.Len(t, txns, 1)
	received := txns[0].(map[string]any)
	assert.Equal(t, "Received from Alice", received["description"])
	assert.Equal(t, float64(75), body["balance"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := testApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/transactions/credit",
		`{"wallet_id":"x","amount":10}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogoutInvalidatesAccessToken(t *testing.T) {
	app := testApp(t)
	acct := registerAndLogin(t, app, "amina", "Amina K")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/logout", "", acct.token)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", "", acct.token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthz(t *testing.T) {
	app := testApp(t)

	status, body := doJSON(t, app, fiber.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body["status"])
}
