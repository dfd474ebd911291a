package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestRegisterCreatesUser(t *testing.T) {
	app, store := newTestApp(t)

	body := `{"name":"Rifat","email":"rifat@example.com","password":"secret","age":30,"date_of_birth":"1995-04-01"}`
	req := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}
	user, err := store.Users().GetByEmail(context.Background(), "rifat@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Fatalf("password stored as %q, want a hash", user.PasswordHash)
	}
	if user.Age == nil || *user.Age != 30 {
		t.Errorf("age not persisted: %v", user.Age)
	}
	if user.DateOfBirth == nil || user.DateOfBirth.Format("2006-01-02") != "1995-04-01" {
		t.Errorf("date_of_birth not persisted: %v", user.DateOfBirth)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"name":"Rifat","email":"rifat@example.com","password":"secret"}`
	first := httptest.NewRecorder()
	app.Register(first, httptest.NewRequest("POST", "/api/register", strings.NewReader(body)))
	if first.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", first.Code)
	}

	second := httptest.NewRecorder()
	app.Register(second, httptest.NewRequest("POST", "/api/register", strings.NewReader(body)))
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second register status = %d, want 400", second.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(second.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["code"] != "duplicate_email" {
		t.Errorf("code = %q, want duplicate_email", resp["code"])
	}
}

func TestRegisterMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	for _, body := range []string{
		`{}`,
		`{"name":"x","email":"x@example.com"}`,
		`{"email":"x@example.com","password":"secret"}`,
		`not json`,
	} {
		rr := httptest.NewRecorder()
		app.Register(rr, httptest.NewRequest("POST", "/api/register", strings.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("register %q status = %d, want 400", body, rr.Code)
		}
	}
}

func loginForm(email, password string) *http.Request {
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginWrongPassword(t *testing.T) {
	app, store := newTestApp(t)
	seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	rr := httptest.NewRecorder()
	app.Login(rr, loginForm("rifat@example.com", "wrong"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app, _ := newTestApp(t)

	rr := httptest.NewRecorder()
	app.Login(rr, loginForm("nobody@example.com", "secret"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	rr := httptest.NewRecorder()
	app.Login(rr, loginForm("rifat@example.com", "secret"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session_id" {
		t.Fatalf("expected a session_id cookie, got %v", cookies)
	}
	session, err := store.Sessions().GetByToken(context.Background(), cookies[0].Value)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.UserID != user.ID {
		t.Errorf("session user = %d, want %d", session.UserID, user.ID)
	}
	if session.Expired() {
		t.Errorf("fresh session already expired")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "Rifat", "rifat@example.com", "secret")

	login := httptest.NewRecorder()
	app.Login(login, loginForm("rifat@example.com", "secret"))
	token := login.Result().Cookies()[0].Value

	req := httptest.NewRequest("GET", "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: token})
	req = asUser(req, user.ID)
	rr := httptest.NewRecorder()
	app.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if _, err := store.Sessions().GetByToken(context.Background(), token); err == nil {
		t.Fatalf("session still resolvable after logout")
	}
}
