package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
	"github.com/rhrony1513/CharityPulse-Backend/internal/middleware"
	"github.com/rhrony1513/CharityPulse-Backend/internal/storage"
)

// App bundles the collaborators every handler needs. All dependencies are
// injected; handlers hold no global state.
type App struct {
	Logger     zerolog.Logger
	Users      domain.UserRepository
	Donations  domain.DonationRepository
	Comments   domain.CommentRepository
	Sessions   domain.SessionRepository
	Files      *storage.FileStore
	SessionTTL time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}

func (a *App) currentUserID(r *http.Request) int64 {
	return middleware.UserIDFromContext(r.Context())
}
