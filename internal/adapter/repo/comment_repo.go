package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

// CommentRepositoryPG implements domain.CommentRepository using PostgreSQL.
type CommentRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new comment repo.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepositoryPG {
	return &CommentRepositoryPG{pool: pool}
}

// Create inserts a new comment record and fills in its ID.
func (r *CommentRepositoryPG) Create(ctx context.Context, comment *domain.Comment) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO comments (donation_id, user_id, comment_text, parent_comment_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`, comment.DonationID, comment.UserID, comment.Text, comment.ParentID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID returns the comment with the given id, or domain.ErrNotFound.
func (r *CommentRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.pool.QueryRow(ctx, `
SELECT id, donation_id, user_id, comment_text, parent_comment_id, created_at
FROM comments
WHERE id = $1;
`, id).Scan(&c.ID, &c.DonationID, &c.UserID, &c.Text, &c.ParentID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select comment: %w", err)
	}
	return &c, nil
}
