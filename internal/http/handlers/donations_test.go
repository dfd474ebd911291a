package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

func postDonation(t *testing.T, app *App, userID int64, fields map[string]string, filenames []string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, filenames)
	req := httptest.NewRequest("POST", "/api/donations", body)
	req.Header.Set("Content-Type", contentType)
	req = asUser(req, userID)
	rr := httptest.NewRecorder()
	app.DonationsCreate(rr, req)
	return rr
}

func TestDonationsCreatePersistsListing(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	rr := postDonation(t, app, user.ID, map[string]string{
		"title":       "Office chair",
		"description": "Lightly used",
		"location":    "Dhaka",
		"condition":   "good",
		"category":    "furniture",
	}, []string{"chair.png"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	donation, err := store.Donations().GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("donation not persisted: %v", err)
	}
	if donation.UserID != user.ID {
		t.Errorf("author = %d, want %d", donation.UserID, user.ID)
	}
	if donation.Location != "Dhaka" || donation.Category != "furniture" {
		t.Errorf("optional fields not persisted: %+v", donation)
	}
	if len(donation.Images) != 1 {
		t.Fatalf("image rows = %d, want 1", len(donation.Images))
	}
	// the upload must actually be on disk
	if _, err := os.Stat(filepath.Join(app.Files.BasePath(), filepath.FromSlash(donation.Images[0].FilePath))); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestDonationsCreateCapsImagesAtFive(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	names := []string{"a.png", "b.png", "c.jpg", "d.jpeg", "e.gif", "f.png", "g.png"}
	rr := postDonation(t, app, user.ID, map[string]string{"title": "Books", "description": "Box of books"}, names)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	donation, err := store.Donations().GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("donation not persisted: %v", err)
	}
	if len(donation.Images) != 5 {
		t.Fatalf("image rows = %d, want 5", len(donation.Images))
	}
}

func TestDonationsCreateSkipsDisallowedFiles(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	rr := postDonation(t, app, user.ID, map[string]string{"title": "Laptop", "description": "Old laptop"},
		[]string{"x.exe", "photo.png"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: disallowed file must not fail the request", rr.Code)
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	donation, err := store.Donations().GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("donation not persisted: %v", err)
	}
	if len(donation.Images) != 1 {
		t.Fatalf("image rows = %d, want 1 (x.exe skipped)", len(donation.Images))
	}
}

func TestDonationsCreateRequiresTitleAndDescription(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	rr := postDonation(t, app, user.ID, map[string]string{"description": "no title"}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestDonationsListReturnsAllWithAuthorSummary(t *testing.T) {
	app, store := newTestApp(t)
	alice := seedUser(t, store, "Alice", "alice@example.com", "secret")
	bob := seedUser(t, store, "Bob", "bob@example.com", "secret")

	for _, seed := range []struct {
		user  *domain.User
		title string
		paths []string
	}{
		{alice, "Chair", []string{"donations/one.png"}},
		{bob, "Table", nil},
		{alice, "Lamp", []string{"donations/two.png", "donations/three.png"}},
	} {
		d := &domain.Donation{UserID: seed.user.ID, Title: seed.title, Description: "d"}
		if err := store.Donations().Create(context.Background(), d, seed.paths); err != nil {
			t.Fatalf("seed donation: %v", err)
		}
	}

	rr := httptest.NewRecorder()
	app.DonationsList(rr, httptest.NewRequest("GET", "/api/donations", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var items []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("entries = %d, want 3", len(items))
	}

	first := items[0]
	donator, ok := first["donator"].(map[string]any)
	if !ok {
		t.Fatalf("missing donator summary: %v", first)
	}
	if donator["name"] != "Alice" {
		t.Errorf("donator name = %v, want Alice", donator["name"])
	}
	if _, leaked := donator["email"]; leaked {
		t.Errorf("listing leaks author email")
	}
	images, ok := first["images"].([]any)
	if !ok || len(images) != 1 {
		t.Fatalf("images = %v, want one path", first["images"])
	}
	if images[0] != "/uploads/donations/one.png" {
		t.Errorf("image path = %v, want /uploads/donations/one.png", images[0])
	}
}

func TestDonationsListEmpty(t *testing.T) {
	app, _ := newTestApp(t)

	rr := httptest.NewRecorder()
	app.DonationsList(rr, httptest.NewRequest("GET", "/api/donations", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty array", body)
	}
}

func TestDonationsDetailNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := withURLParam(httptest.NewRequest("GET", "/api/donations/99", nil), "id", "99")
	rr := httptest.NewRecorder()
	app.DonationsDetail(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDonationsDetailIncludesEmailAndComments(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Alice", "alice@example.com", "secret")

	d := &domain.Donation{UserID: user.ID, Title: "Chair", Description: "d"}
	if err := store.Donations().Create(context.Background(), d, nil); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	top := &domain.Comment{DonationID: d.ID, UserID: user.ID, Text: "still available?"}
	if err := store.Comments().Create(context.Background(), top); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	reply := &domain.Comment{DonationID: d.ID, UserID: user.ID, Text: "yes", ParentID: &top.ID}
	if err := store.Comments().Create(context.Background(), reply); err != nil {
		t.Fatalf("seed reply: %v", err)
	}

	req := withURLParam(httptest.NewRequest("GET", "/api/donations/1", nil), "id", "1")
	rr := httptest.NewRecorder()
	app.DonationsDetail(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var detail struct {
		Donator  map[string]any `json:"donator"`
		Comments []struct {
			ID       int64  `json:"id"`
			UserName string `json:"user_name"`
			Text     string `json:"comment_text"`
			ParentID *int64 `json:"parent_comment_id"`
		} `json:"comments"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Donator["email"] != "alice@example.com" {
		t.Errorf("detail donator email = %v, want alice@example.com", detail.Donator["email"])
	}
	if len(detail.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(detail.Comments))
	}
	if detail.Comments[0].ParentID != nil {
		t.Errorf("top-level comment has parent %v", *detail.Comments[0].ParentID)
	}
	if detail.Comments[1].ParentID == nil || *detail.Comments[1].ParentID != detail.Comments[0].ID {
		t.Errorf("reply parent = %v, want %d", detail.Comments[1].ParentID, detail.Comments[0].ID)
	}
	if detail.Comments[0].UserName != "Alice" {
		t.Errorf("comment user_name = %q, want Alice", detail.Comments[0].UserName)
	}
}
