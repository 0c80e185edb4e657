package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Proposal{}, &models.Contract{},
		&models.Invoice{}, &models.LineItem{}, &models.Comment{}, &models.ShareLink{},
		&models.IdempotencyKey{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FirstName: "Ada", LastName: "Lund", Email: email}
	user.SetPassword("secret-pass-123")
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return user
}

// asUser stands in for the JWT middleware in handler tests.
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

// ---- collaborator fakes

type fakeMailer struct {
	sent []string // recipients, in order
	fail error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeStore struct {
	uploads []string
}

func (f *fakeStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	f.uploads = append(f.uploads, objectName)
	return "https://files.test/" + objectName, nil
}

func (f *fakeStore) UploadDataURL(ctx context.Context, prefix, payload string) (string, error) {
	if payload == "" {
		return "", errors.New("empty payload")
	}
	name := prefix + "/object.png"
	f.uploads = append(f.uploads, name)
	return "https://files.test/" + name, nil
}

type fakePDF struct{}

func (fakePDF) Render(html, filename string) ([]byte, error) {
	return []byte("%PDF-1.4 " + filename), nil
}

// resetDeps clears collaborators between tests; Configure is package-global.
func resetDeps(t *testing.T) {
	t.Helper()
	Configure(Deps{})
	t.Cleanup(func() { Configure(Deps{}) })
}
