package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

const uniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository using PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repo.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user record and fills in its ID. A unique violation
// on the email column is reported as domain.ErrDuplicateEmail.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (name, email, password_hash, age, phone, date_of_birth, profile_picture)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at;
`, user.Name, user.Email, user.PasswordHash, user.Age, user.Phone, user.DateOfBirth, user.ProfilePicture).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns the user registered under email, or domain.ErrNotFound.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `
SELECT id, name, email, password_hash, age, phone, date_of_birth, profile_picture, created_at
FROM users
WHERE email = $1;
`, email)
}

// GetByID returns the user with the given id, or domain.ErrNotFound.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `
SELECT id, name, email, password_hash, age, phone, date_of_birth, profile_picture, created_at
FROM users
WHERE id = $1;
`, id)
}

func (r *UserRepositoryPG) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Phone, &u.DateOfBirth, &u.ProfilePicture, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
