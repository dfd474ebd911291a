package domain

import "time"

// Session is a server-side login record referenced by a client cookie.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
