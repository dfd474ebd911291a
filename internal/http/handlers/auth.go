package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
	"github.com/rhrony1513/CharityPulse-Backend/internal/middleware"
)

type registerRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Age         *int    `json:"age"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

// Register creates a new account. No session is established; the caller
// logs in separately.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no input data provided")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "date_of_birth must be YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Age:          req.Age,
		Phone:        req.Phone,
		DateOfBirth:  dob,
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			a.error(w, http.StatusBadRequest, "duplicate_email", "user already exists")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{"id": user.ID, "message": "user registered successfully"})
}

// Login verifies form credentials and establishes a session cookie.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form data")
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("lookup user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(a.SessionTTL),
	}
	if err := a.Sessions.Create(r.Context(), session); err != nil {
		a.Logger.Error().Err(err).Msg("create session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, map[string]string{"message": "logged in successfully"})
}

// Logout clears the current session. RequireAuth guards the route, so a
// missing session never reaches this handler.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := a.Sessions.Delete(r.Context(), cookie.Value); err != nil {
			a.Logger.Error().Err(err).Msg("delete session failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}
