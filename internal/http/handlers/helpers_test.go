package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhrony1513/CharityPulse-Backend/internal/adapter/repo/memory"
	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
	"github.com/rhrony1513/CharityPulse-Backend/internal/middleware"
	"github.com/rhrony1513/CharityPulse-Backend/internal/storage"
)

func newTestApp(t *testing.T) (*App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	app := &App{
		Logger:     zerolog.Nop(),
		Users:      store.Users(),
		Donations:  store.Donations(),
		Comments:   store.Comments(),
		Sessions:   store.Sessions(),
		Files:      files,
		SessionTTL: time.Hour,
	}
	return app, store
}

func seedUser(t *testing.T, store *memory.Store, name, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// asUser attaches an authenticated principal, standing in for the session
// middleware the router applies in production.
func asUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

// withURLParam injects a chi route parameter for handlers called outside a router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// multipartBody builds a donation form with the given field values and one
// small file per provided filename.
func multipartBody(t *testing.T, fields map[string]string, filenames []string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, name := range filenames {
		part, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
