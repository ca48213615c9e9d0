package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptmarket-server/internal/config"
	"promptmarket-server/internal/database"
	"promptmarket-server/internal/handlers"
	"promptmarket-server/internal/models"
	"promptmarket-server/internal/routes"
	"promptmarket-server/internal/services"
)

// newTestApp wires the full HTTP surface over an in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Prompt{}, &models.Purchase{},
		&models.Sale{}, &models.PaymentEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
		StripeCurrency:  "inr",
	}

	authService := services.NewAuthService(db, cfg)
	promptService := services.NewPromptService(db)
	purchaseService := services.NewPurchaseService(db)
	paymentService := services.NewPaymentService(db, cfg, purchaseService)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewPromptHandler(promptService, purchaseService),
		handlers.NewPaymentHandler(paymentService),
		handlers.NewAIHandler(authService, promptService),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	raw, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &result)
	}
	return resp, result
}

// listPrompts fetches GET /prompts and decodes the array response.
func listPrompts(t *testing.T, app *fiber.App, token string) []map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest("GET", "/prompts", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET /prompts failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET /prompts: status %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var prompts []map[string]interface{}
	if err := json.Unmarshal(raw, &prompts); err != nil {
		t.Fatalf("failed to decode prompt list: %v", err)
	}
	return prompts
}

func register(t *testing.T, app *fiber.App, username, email, password string) {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/auth/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", username, resp.StatusCode, body)
	}
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d, body %v", username, resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s returned no token", username)
	}
	return token
}

func createPrompt(t *testing.T, app *fiber.App, token string, req map[string]interface{}) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/prompts", token, req)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create prompt: status %d, body %v", resp.StatusCode, body)
	}
	id, _ := body["prompt_id"].(string)
	if id == "" {
		t.Fatal("create prompt returned no id")
	}
	return id
}
