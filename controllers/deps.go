package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"pitchdesk-backend/services"

	"github.com/gofiber/fiber/v2"
)

// EmailSender delivers transactional mail.
type EmailSender interface {
	Send(to, subject, html, text string) error
}

// PDFRenderer turns document HTML into PDF bytes.
type PDFRenderer interface {
	Render(html, filename string) ([]byte, error)
}

// Enhancer is the LLM collaborator.
type Enhancer interface {
	Enhance(prompt string) (string, error)
	GenerateProposal(calculatorData json.RawMessage) (string, error)
}

// PhotoSearcher is the third-party image search collaborator.
type PhotoSearcher interface {
	Search(query string, page, perPage int) (*services.PhotoSearchResult, error)
	TriggerDownload(downloadLocation string)
}

// ObjectStore persists uploaded files and signature images.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	UploadDataURL(ctx context.Context, prefix, payload string) (string, error)
}

// Deps carries the external collaborators the handlers call out to. Any
// field may be nil; the feature then degrades to a 503 without touching
// document state.
type Deps struct {
	Mail   EmailSender
	PDF    PDFRenderer
	AI     Enhancer
	Photos PhotoSearcher
	Store  ObjectStore
}

var deps Deps

// errServiceMissing stands in for a collaborator that was never wired.
var errServiceMissing = services.ErrNotConfigured

// Configure wires the external collaborators. Called once from main, and
// from tests with fakes.
func Configure(d Deps) {
	deps = d
}

// PublicBaseURL is the origin shared links are built against.
func PublicBaseURL() string {
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:3000"
}

// serviceError maps a collaborator failure to a response. State is always
// left at its pre-call value by the callers.
func serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "service unavailable",
		})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"message": "external service error",
		"error":   err.Error(),
	})
}

// currentUserID reads the authenticated user from the request context.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}
