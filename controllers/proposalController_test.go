package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"pitchdesk-backend/models"

	"github.com/gofiber/fiber/v2"
)

func newProposalApp(userID string) *fiber.App {
	app := newTestApp()
	app.Get("/p/:token", ViewSharedProposal)
	app.Post("/p/:token/accept", AcceptSharedProposal)
	app.Post("/p/:token/reject", RejectSharedProposal)

	authed := app.Group("", asUser(userID))
	authed.Post("/proposals", CreateProposal)
	authed.Get("/proposals", GetProposals)
	authed.Get("/proposals/:id", GetProposal)
	authed.Patch("/proposals/:id", UpdateProposal)
	authed.Delete("/proposals/:id", DeleteProposal)
	authed.Post("/proposals/:id/send", SendProposal)
	return app
}

func TestProposalLifecycle(t *testing.T) {
	db := setupTestDB(t)
	resetDeps(t)
	mailer := &fakeMailer{}
	Configure(Deps{Mail: mailer})

	user := seedUser(t, db, "owner@agency.test")
	app := newProposalApp(user.Id)

	body := `{
		"title": "Growth Retainer",
		"client_name": "Nora Quist",
		"client_email": "nora@client.test",
		"selection": {"traffic": 2, "retention": 1},
		"contract_term": "12"
	}`
	resp, created := doJSON(t, app, http.MethodPost, "/proposals", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%v", resp.StatusCode, created)
	}
	if created["status"] != "draft" {
		t.Fatalf("new proposal should be draft, got %v", created["status"])
	}
	calc, ok := created["calculator_data"].(map[string]any)
	if !ok {
		t.Fatalf("missing calculator snapshot: %#v", created["calculator_data"])
	}
	totals := calc["totals"].(map[string]any)
	if totals["monthly_total"].(float64) != 15200 {
		t.Fatalf("expected monthly 15200, got %v", totals["monthly_total"])
	}
	if totals["annual_total"].(float64) != 190400 {
		t.Fatalf("expected annual 190400, got %v", totals["annual_total"])
	}
	id := strconv.Itoa(int(created["id"].(float64)))

	// Draft patches apply; calculator input change rewrites the snapshot.
	resp, patched := doJSON(t, app, http.MethodPatch, "/proposals/"+id, `{"contract_term": "6"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200 got %d body=%v", resp.StatusCode, patched)
	}
	var stored models.Proposal
	if err := db.First(&stored, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !strings.Contains(string(stored.CalculatorData), `"contract_term":"6"`) {
		t.Fatalf("snapshot not rewritten: %s", stored.CalculatorData)
	}
	if !strings.Contains(string(stored.CalculatorData), `"monthly_total":16000`) {
		t.Fatalf("6-month total should drop the discount: %s", stored.CalculatorData)
	}

	// Send: emails the client, mints a share link, moves to sent.
	resp, sent := doJSON(t, app, http.MethodPost, "/proposals/"+id+"/send", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send: expected 200 got %d body=%v", resp.StatusCode, sent)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "nora@client.test" {
		t.Fatalf("expected one mail to the client, got %v", mailer.sent)
	}
	shareURL, _ := sent["share_url"].(string)
	if !strings.Contains(shareURL, "/p/") {
		t.Fatalf("unexpected share url %q", shareURL)
	}
	token := shareURL[strings.LastIndex(shareURL, "/")+1:]

	// Sent proposals are frozen.
	resp, _ = doJSON(t, app, http.MethodPatch, "/proposals/"+id, `{"title": "Other"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("patch after send: expected 409 got %d", resp.StatusCode)
	}

	// Re-send from sent is not a transition.
	resp, _ = doJSON(t, app, http.MethodPost, "/proposals/"+id+"/send", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double send: expected 409 got %d", resp.StatusCode)
	}

	// Opening the link reports viewed and counts the open.
	resp, viewed := doJSON(t, app, http.MethodGet, "/p/"+token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("view: expected 200 got %d", resp.StatusCode)
	}
	if viewed["status"] != "viewed" {
		t.Fatalf("expected viewed, got %v", viewed["status"])
	}
	doJSON(t, app, http.MethodGet, "/p/"+token, "")
	if err := db.First(&stored, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ViewCount != 2 {
		t.Fatalf("expected view_count 2, got %d", stored.ViewCount)
	}

	// Recipient decision is terminal.
	resp, accepted := doJSON(t, app, http.MethodPost, "/p/"+token+"/accept", "")
	if resp.StatusCode != http.StatusOK || accepted["status"] != "accepted" {
		t.Fatalf("accept: got %d %v", resp.StatusCode, accepted)
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/p/"+token+"/reject", "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("reject after accept: expected 409 got %d", resp.StatusCode)
	}
}

func TestProposalSendRequiresClientEmail(t *testing.T) {
	db := setupTestDB(t)
	resetDeps(t)
	user := seedUser(t, db, "owner@agency.test")
	app := newProposalApp(user.Id)

	resp, created := doJSON(t, app, http.MethodPost, "/proposals", `{"title": "No Email"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d %v", resp.StatusCode, created)
	}
	id := strconv.Itoa(int(created["id"].(float64)))

	resp, _ = doJSON(t, app, http.MethodPost, "/proposals/"+id+"/send", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("send without client email: expected 400 got %d", resp.StatusCode)
	}
}

func TestProposalOwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	resetDeps(t)
	owner := seedUser(t, db, "owner@agency.test")
	other := seedUser(t, db, "other@agency.test")

	ownerApp := newProposalApp(owner.Id)
	resp, created := doJSON(t, ownerApp, http.MethodPost, "/proposals", `{"title": "Private"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	id := strconv.Itoa(int(created["id"].(float64)))

	otherApp := newProposalApp(other.Id)
	resp, _ = doJSON(t, otherApp, http.MethodGet, "/proposals/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign read: expected 404 got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, otherApp, http.MethodDelete, "/proposals/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404 got %d", resp.StatusCode)
	}
}

func TestExpiredShareLinkIsGone(t *testing.T) {
	db := setupTestDB(t)
	resetDeps(t)
	user := seedUser(t, db, "owner@agency.test")
	app := newProposalApp(user.Id)

	proposal := models.Proposal{UserID: user.Id, Title: "Old", Status: models.ProposalSent}
	if err := db.Create(&proposal).Error; err != nil {
		t.Fatalf("proposal: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	link := models.ShareLink{Type: models.LinkProposal, TargetID: proposal.ID, UserID: user.Id, ExpiresAt: &past}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("link: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodGet, "/p/"+link.Token, "")
	if resp.StatusCode != http.StatusGone {
		t.Fatalf("expired link: expected 410 got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/p/does-not-exist", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown token: expected 404 got %d", resp.StatusCode)
	}
}
