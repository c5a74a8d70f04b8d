package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"scishare/internal/config"
	"scishare/internal/db"
	"scishare/internal/models"
	"scishare/internal/share"
)

// memStore is an in-memory stand-in for the database layer, implementing
// both the write and read sides used by the share core.
type memStore struct {
	abstracts map[uuid.UUID]*models.Abstract
	shares    []*models.SharedAbstract
	clock     time.Time
}

func newMemStore(abstracts ...*models.Abstract) *memStore {
	s := &memStore{
		abstracts: make(map[uuid.UUID]*models.Abstract),
		clock:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, a := range abstracts {
		s.abstracts[a.ID] = a
	}
	return s
}

func (s *memStore) GetAbstractByID(ctx context.Context, id uuid.UUID) (*models.Abstract, error) {
	a, ok := s.abstracts[id]
	if !ok {
		return nil, db.ErrAbstractNotFound
	}
	return a, nil
}

func (s *memStore) CreateSharedAbstract(ctx context.Context, record *models.SharedAbstract) error {
	s.clock = s.clock.Add(time.Minute)
	record.ID = uuid.New()
	record.SharedAt = s.clock
	s.shares = append(s.shares, record)
	return nil
}

func (s *memStore) GetSharesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.SharedAbstractWithTitle, error) {
	var out []models.SharedAbstractWithTitle
	for i := len(s.shares) - 1; i >= 0 && len(out) < limit; i-- {
		r := s.shares[i]
		if r.UserID != userID {
			continue
		}
		out = append(out, models.SharedAbstractWithTitle{
			SharedAbstract: *r,
			AbstractTitle:  s.abstracts[r.AbstractID].Title,
		})
	}
	return out, nil
}

func (s *memStore) GetMostShared(ctx context.Context, limit int) ([]models.ShareCount, error) {
	counts := make(map[uuid.UUID]int)
	for _, r := range s.shares {
		counts[r.AbstractID]++
	}

	var out []models.ShareCount
	for id, n := range counts {
		a := s.abstracts[id]
		out = append(out, models.ShareCount{
			AbstractID:      id,
			Title:           a.Title,
			Authors:         a.Authors,
			PublicationYear: a.PublicationYear,
			SharesCount:     n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharesCount != out[j].SharesCount {
			return out[i].SharesCount > out[j].SharesCount
		}
		return out[i].AbstractID.String() < out[j].AbstractID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) Send(to, subject, htmlBody, textBody string) error {
	m.sent++
	return m.err
}

func newTestAbstract(title string) *models.Abstract {
	year := 2022
	return &models.Abstract{
		ID:              uuid.New(),
		Title:           title,
		Authors:         "Doe, J.",
		AbstractText:    "Some text.",
		PublicationYear: &year,
	}
}

// newTestApp wires the share routes onto a bare fiber app. The user
// middleware mimics the session auth layer; a nil user leaves the request
// unauthenticated.
func newTestApp(store *memStore, mailer share.Mailer, user *models.User) *fiber.App {
	cfg := &config.Config{
		SiteTitle:   "SciShare",
		BaseURL:     "http://localhost:3000",
		FrontendURL: "http://localhost:3000",
	}
	handler := NewShareHandler(share.NewService(store, mailer, cfg), share.NewQueries(store))

	app := fiber.New()
	withUser := func(c fiber.Ctx) error {
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	}

	app.Get("/abstracts/my_shared", withUser, handler.MyShared)
	app.Get("/abstracts/most_shared", withUser, handler.MostShared)
	app.Post("/abstracts/:id/share", withUser, handler.Share)

	return app
}

func shareRequest(t *testing.T, app *fiber.App, abstractID, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", "/abstracts/"+abstractID+"/share", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON response %q: %v", raw, err)
	}
	return resp.StatusCode, decoded
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON response %q: %v", raw, err)
	}
	return resp.StatusCode, decoded
}

func TestShareEndpoint_Success(t *testing.T) {
	abstract := newTestAbstract("Shared one")
	store := newMemStore(abstract)
	user := &models.User{ID: uuid.New(), Name: "Ada"}
	app := newTestApp(store, &stubMailer{}, user)

	status, body := shareRequest(t, app, abstract.ID.String(), `{"recipient_email":"x@y.com","message":"hi"}`)

	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["message"] != "Abstract shared successfully with x@y.com" {
		t.Errorf("unexpected message %q", body["message"])
	}
	if body["shared_id"] == nil || body["shared_id"] == "" {
		t.Error("expected shared_id in response")
	}
	if body["shared_at"] == nil {
		t.Error("expected shared_at in response")
	}

	// And the record lands first in the user's history.
	status, history := getJSON(t, app, "/abstracts/my_shared")
	if status != fiber.StatusOK {
		t.Fatalf("my_shared status = %d, want 200", status)
	}
	entries := history["shared_abstracts"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	first := entries[0].(map[string]any)
	if first["id"] != body["shared_id"] {
		t.Error("my_shared should surface the new share first")
	}
	if first["email_sent_successfully"] != true {
		t.Error("history entry should be marked delivered")
	}
}

func TestShareEndpoint_DeliveryFailure(t *testing.T) {
	abstract := newTestAbstract("Undeliverable")
	store := newMemStore(abstract)
	user := &models.User{ID: uuid.New(), Name: "Ada"}
	app := newTestApp(store, &stubMailer{err: errors.New("boom")}, user)

	status, body := shareRequest(t, app, abstract.ID.String(), `{"recipient_email":"x@y.com"}`)

	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if body["success"] != false {
		t.Error("expected success false")
	}
	if body["error"] != "Failed to send email. Please try again later." {
		t.Errorf("unexpected error message %q", body["error"])
	}
	if body["shared_id"] != nil {
		t.Error("failure response must not carry a shared_id")
	}

	// The attempt is still recorded.
	if len(store.shares) != 1 {
		t.Fatalf("expected 1 recorded attempt, got %d", len(store.shares))
	}
	if store.shares[0].EmailSentSuccessfully {
		t.Error("recorded attempt should be marked undelivered")
	}
}

func TestShareEndpoint_ValidationErrors(t *testing.T) {
	abstract := newTestAbstract("Valid target")
	store := newMemStore(abstract)
	user := &models.User{ID: uuid.New(), Name: "Ada"}
	mailer := &stubMailer{}
	app := newTestApp(store, mailer, user)

	tests := []struct {
		name string
		body string
	}{
		{"malformed email", `{"recipient_email":"not-an-email"}`},
		{"missing email", `{}`},
		{"oversized message", `{"recipient_email":"x@y.com","message":"` + strings.Repeat("a", 1001) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := shareRequest(t, app, abstract.ID.String(), tt.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if body["success"] != false {
				t.Error("expected success false")
			}
		})
	}

	if mailer.sent != 0 {
		t.Errorf("validation failures must not send email, got %d sends", mailer.sent)
	}
	if len(store.shares) != 0 {
		t.Errorf("validation failures must not create records, got %d", len(store.shares))
	}
}

func TestShareEndpoint_AbstractNotFound(t *testing.T) {
	store := newMemStore(newTestAbstract("Exists"))
	user := &models.User{ID: uuid.New(), Name: "Ada"}
	app := newTestApp(store, &stubMailer{}, user)

	status, _ := shareRequest(t, app, uuid.NewString(), `{"recipient_email":"x@y.com"}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if len(store.shares) != 0 {
		t.Error("missing abstract must not create records")
	}
}

func TestShareEndpoint_Unauthenticated(t *testing.T) {
	abstract := newTestAbstract("Protected")
	app := newTestApp(newMemStore(abstract), &stubMailer{}, nil)

	status, _ := shareRequest(t, app, abstract.ID.String(), `{"recipient_email":"x@y.com"}`)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}

	for _, path := range []string{"/abstracts/my_shared", "/abstracts/most_shared"} {
		if status, _ := getJSON(t, app, path); status != fiber.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, status)
		}
	}
}

func TestMySharedEndpoint_OnlyOwnRecords(t *testing.T) {
	abstract := newTestAbstract("Mine and theirs")
	store := newMemStore(abstract)
	alice := &models.User{ID: uuid.New(), Name: "Alice"}
	bob := &models.User{ID: uuid.New(), Name: "Bob"}

	// Bob shares twice, Alice once.
	bobApp := newTestApp(store, &stubMailer{}, bob)
	shareRequest(t, bobApp, abstract.ID.String(), `{"recipient_email":"b1@y.com"}`)
	shareRequest(t, bobApp, abstract.ID.String(), `{"recipient_email":"b2@y.com"}`)

	aliceApp := newTestApp(store, &stubMailer{}, alice)
	shareRequest(t, aliceApp, abstract.ID.String(), `{"recipient_email":"a1@y.com"}`)

	status, body := getJSON(t, aliceApp, "/abstracts/my_shared")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	entries := body["shared_abstracts"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected only alice's entry, got %d", len(entries))
	}
	entry := entries[0].(map[string]any)
	if entry["recipient_email"] != "a1@y.com" {
		t.Errorf("leaked another user's share: %v", entry)
	}
	if body["total"] != float64(1) {
		t.Errorf("total = %v, want 1", body["total"])
	}
}

func TestMostSharedEndpoint_RankingAndLimit(t *testing.T) {
	popular := newTestAbstract("Popular")
	niche := newTestAbstract("Niche")
	store := newMemStore(popular, niche)
	user := &models.User{ID: uuid.New(), Name: "Ada"}

	// 5 attempts for popular (one failed), 2 for niche.
	okApp := newTestApp(store, &stubMailer{}, user)
	for i := 0; i < 4; i++ {
		shareRequest(t, okApp, popular.ID.String(), `{"recipient_email":"x@y.com"}`)
	}
	failApp := newTestApp(store, &stubMailer{err: errors.New("boom")}, user)
	shareRequest(t, failApp, popular.ID.String(), `{"recipient_email":"x@y.com"}`)
	shareRequest(t, okApp, niche.ID.String(), `{"recipient_email":"x@y.com"}`)
	shareRequest(t, okApp, niche.ID.String(), `{"recipient_email":"x@y.com"}`)

	status, body := getJSON(t, okApp, "/abstracts/most_shared?limit=1")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	ranked := body["most_shared"].([]any)
	if len(ranked) != 1 {
		t.Fatalf("limit=1 should return exactly one entry, got %d", len(ranked))
	}
	top := ranked[0].(map[string]any)
	if top["title"] != "Popular" {
		t.Errorf("top entry = %v, want the most shared abstract", top["title"])
	}
	if top["shares_count"] != float64(5) {
		t.Errorf("shares_count = %v, want 5 (failed attempts count)", top["shares_count"])
	}
	for _, leak := range []string{"recipient_email", "user_id", "message"} {
		if _, ok := top[leak]; ok {
			t.Errorf("most_shared entry must not expose %s", leak)
		}
	}
	if body["note"] == nil || body["note"] == "" {
		t.Error("expected explanatory note in response")
	}
}
