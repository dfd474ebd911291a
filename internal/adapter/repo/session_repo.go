package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

// SessionRepositoryPG implements domain.SessionRepository using PostgreSQL.
type SessionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new session repo.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepositoryPG {
	return &SessionRepositoryPG{pool: pool}
}

// Create persists a new session.
func (r *SessionRepositoryPG) Create(ctx context.Context, session *domain.Session) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO sessions (token, user_id, expires_at)
VALUES ($1, $2, $3)
RETURNING created_at;
`, session.Token, session.UserID, session.ExpiresAt).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByToken resolves a session token, or returns domain.ErrNotFound.
func (r *SessionRepositoryPG) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.pool.QueryRow(ctx, `
SELECT token, user_id, created_at, expires_at
FROM sessions
WHERE token = $1;
`, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &s, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (r *SessionRepositoryPG) Delete(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1;`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
