package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"pitchdesk-backend/models"

	"github.com/gofiber/fiber/v2"
)

func newLinkApp(userID string) *fiber.App {
	app := newTestApp()
	authed := app.Group("", asUser(userID))
	authed.Post("/links", CreateShareLink)
	return app
}

func TestCreateShareLink(t *testing.T) {
	db := setupTestDB(t)
	resetDeps(t)
	user := seedUser(t, db, "owner@agency.test")
	app := newLinkApp(user.Id)

	proposal := models.Proposal{UserID: user.Id, Title: "Linked", Status: models.ProposalDraft}
	if err := db.Create(&proposal).Error; err != nil {
		t.Fatalf("proposal: %v", err)
	}

	body := fmt.Sprintf(`{"type": "proposal", "target_id": %d}`, proposal.ID)
	resp, link := doJSON(t, app, http.MethodPost, "/links", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create link: expected 201 got %d body=%v", resp.StatusCode, link)
	}
	if token, _ := link["token"].(string); token == "" {
		t.Fatalf("missing token: %v", link)
	}
	if url, _ := link["url"].(string); !strings.Contains(url, "/p/") {
		t.Fatalf("unexpected url %v", link["url"])
	}

	// A foreign document is invisible.
	other := seedUser(t, db, "other@agency.test")
	otherApp := newLinkApp(other.Id)
	resp, _ = doJSON(t, otherApp, http.MethodPost, "/links", body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign target: expected 404 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/links", `{"type": "proposal", "target_id": 9999}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing target: expected 404 got %d", resp.StatusCode)
	}
}
