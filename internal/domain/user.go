package domain

import "time"

// User represents a registered account. The password is stored only as a
// bcrypt hash; plaintext never leaves the registration/login handlers.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Age            *int
	Phone          *string
	DateOfBirth    *time.Time
	ProfilePicture *string
	CreatedAt      time.Time
}
