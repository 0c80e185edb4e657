package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func authApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(IsAuthenticatedHeader())
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func TestBearerTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "handler-test-secret")
	app := authApp()

	token, err := GenerateJWT("user-42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200 got %d body=%s", resp.StatusCode, body)
	}
}

func TestRejectsMissingAndGarbageTokens(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "handler-test-secret")
	app := authApp()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401 got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401 got %d", resp.StatusCode)
	}
}
