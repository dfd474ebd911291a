// Package memory holds in-memory implementations of the domain repositories.
// They back handler and router tests so the HTTP surface can be exercised
// without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

// Store is the shared backing state for all repository views.
type Store struct {
	mu sync.Mutex

	users     []domain.User
	donations []domain.Donation
	images    []domain.DonationImage
	comments  []domain.Comment
	sessions  map[string]domain.Session

	nextUserID     int64
	nextDonationID int64
	nextImageID    int64
	nextCommentID  int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: map[string]domain.Session{}}
}

// Users returns the user repository view.
func (s *Store) Users() domain.UserRepository { return usersRepo{s} }

// Donations returns the donation repository view.
func (s *Store) Donations() domain.DonationRepository { return donationsRepo{s} }

// Comments returns the comment repository view.
func (s *Store) Comments() domain.CommentRepository { return commentsRepo{s} }

// Sessions returns the session repository view.
func (s *Store) Sessions() domain.SessionRepository { return sessionsRepo{s} }

type usersRepo struct{ s *Store }

func (r usersRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = time.Now().UTC()
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r usersRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r usersRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.userByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) userByID(id int64) (domain.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

type donationsRepo struct{ s *Store }

func (r donationsRepo) Create(_ context.Context, donation *domain.Donation, imagePaths []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextDonationID++
	donation.ID = r.s.nextDonationID
	donation.CreatedAt = time.Now().UTC()
	donation.Images = nil
	for _, path := range imagePaths {
		r.s.nextImageID++
		img := domain.DonationImage{ID: r.s.nextImageID, DonationID: donation.ID, FilePath: path}
		r.s.images = append(r.s.images, img)
		donation.Images = append(donation.Images, img)
	}
	stored := *donation
	stored.Author = nil
	stored.Images = nil
	stored.Comments = nil
	r.s.donations = append(r.s.donations, stored)
	return nil
}

func (r donationsRepo) ListAll(_ context.Context) ([]domain.Donation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]domain.Donation, 0, len(r.s.donations))
	for _, d := range r.s.donations {
		items = append(items, r.s.hydrate(d, false))
	}
	return items, nil
}

func (r donationsRepo) GetByID(_ context.Context, id int64) (*domain.Donation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.donations {
		if d.ID == id {
			full := r.s.hydrate(d, true)
			return &full, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r donationsRepo) ListByUser(_ context.Context, userID int64) ([]domain.Donation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var items []domain.Donation
	for _, d := range r.s.donations {
		if d.UserID == userID {
			items = append(items, r.s.hydrate(d, false))
		}
	}
	return items, nil
}

func (r donationsRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.donations {
		if d.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) hydrate(d domain.Donation, withComments bool) domain.Donation {
	if author, ok := s.userByID(d.UserID); ok {
		d.Author = &author
	}
	d.Images = nil
	for _, img := range s.images {
		if img.DonationID == d.ID {
			d.Images = append(d.Images, img)
		}
	}
	if withComments {
		d.Comments = nil
		for _, c := range s.comments {
			if c.DonationID == d.ID {
				if author, ok := s.userByID(c.UserID); ok {
					c.AuthorName = author.Name
				}
				d.Comments = append(d.Comments, c)
			}
		}
	}
	return d
}

type commentsRepo struct{ s *Store }

func (r commentsRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCommentID++
	comment.ID = r.s.nextCommentID
	comment.CreatedAt = time.Now().UTC()
	r.s.comments = append(r.s.comments, *comment)
	return nil
}

func (r commentsRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.comments {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type sessionsRepo struct{ s *Store }

func (r sessionsRepo) Create(_ context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session.CreatedAt = time.Now().UTC()
	r.s.sessions[session.Token] = *session
	return nil
}

func (r sessionsRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := session
	return &copied, nil
}

func (r sessionsRepo) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, token)
	return nil
}
