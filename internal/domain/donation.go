package domain

import "time"

// Donation is a marketplace listing describing an item offered by a user.
type Donation struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Location    string
	Condition   string
	Category    string
	CreatedAt   time.Time

	// Populated by list/detail queries.
	Author   *User
	Images   []DonationImage
	Comments []Comment
}

// DonationImage references an uploaded file belonging to a donation. It has
// no lifecycle of its own; rows are created together with their donation.
type DonationImage struct {
	ID         int64
	DonationID int64
	FilePath   string
}

// Comment is a message attached to a donation. ParentID, when set, points at
// another comment on the same donation; replies form an adjacency list and
// the caller reconstructs the thread.
type Comment struct {
	ID         int64
	DonationID int64
	UserID     int64
	Text       string
	ParentID   *int64
	CreatedAt  time.Time

	// Populated by detail queries.
	AuthorName string
}
