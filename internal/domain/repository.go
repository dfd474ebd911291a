package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	// Create persists a new user and fills in its ID. Returns
	// ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// DonationRepository handles donation persistence and aggregation.
type DonationRepository interface {
	// Create inserts the donation and one image row per path in a single
	// transaction, filling in the donation ID and Images.
	Create(ctx context.Context, donation *Donation, imagePaths []string) error
	// ListAll returns every donation with its author and image paths.
	ListAll(ctx context.Context) ([]Donation, error)
	// GetByID returns full detail: author, images and the flat comment
	// list. Returns ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*Donation, error)
	// ListByUser returns the donations authored by a user, with images.
	ListByUser(ctx context.Context, userID int64) ([]Donation, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CommentRepository handles comment persistence.
type CommentRepository interface {
	// Create persists a comment and fills in its ID.
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
}

// SessionRepository persists login sessions keyed by their opaque token.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
