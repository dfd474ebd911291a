package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create inserts the donation and its image rows in a single transaction, so
// a failure leaves no partial listing behind.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation, imagePaths []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
INSERT INTO donations (user_id, title, description, location, condition, category)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at;
`, donation.UserID, donation.Title, donation.Description, donation.Location, donation.Condition, donation.Category).
		Scan(&donation.ID, &donation.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}

	donation.Images = donation.Images[:0]
	for _, path := range imagePaths {
		img := domain.DonationImage{DonationID: donation.ID, FilePath: path}
		err := tx.QueryRow(ctx, `
INSERT INTO donation_images (donation_id, file_path)
VALUES ($1, $2)
RETURNING id;
`, img.DonationID, img.FilePath).Scan(&img.ID)
		if err != nil {
			return fmt.Errorf("insert donation image: %w", err)
		}
		donation.Images = append(donation.Images, img)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListAll returns every donation with its author and image paths.
func (r *DonationRepositoryPG) ListAll(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT d.id, d.user_id, d.title, d.description, d.location, d.condition, d.category, d.created_at,
       u.name, u.email, u.profile_picture
FROM donations d
JOIN users u ON u.id = d.user_id
ORDER BY d.id;
`)
	if err != nil {
		return nil, fmt.Errorf("select donations: %w", err)
	}
	defer rows.Close()

	items, err := scanDonationsWithAuthor(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns full donation detail: author, images and the flat comment list.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	var d domain.Donation
	var author domain.User
	err := r.pool.QueryRow(ctx, `
SELECT d.id, d.user_id, d.title, d.description, d.location, d.condition, d.category, d.created_at,
       u.name, u.email, u.profile_picture
FROM donations d
JOIN users u ON u.id = d.user_id
WHERE d.id = $1;
`, id).Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Location, &d.Condition, &d.Category, &d.CreatedAt,
		&author.Name, &author.Email, &author.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select donation: %w", err)
	}
	author.ID = d.UserID
	d.Author = &author

	items := []domain.Donation{d}
	if err := r.attachImages(ctx, items); err != nil {
		return nil, err
	}
	d = items[0]

	comments, err := r.listComments(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Comments = comments
	return &d, nil
}

// ListByUser returns the donations authored by userID, with images.
func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID int64) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT d.id, d.user_id, d.title, d.description, d.location, d.condition, d.category, d.created_at,
       u.name, u.email, u.profile_picture
FROM donations d
JOIN users u ON u.id = d.user_id
WHERE d.user_id = $1
ORDER BY d.id;
`, userID)
	if err != nil {
		return nil, fmt.Errorf("select donations by user: %w", err)
	}
	defer rows.Close()

	items, err := scanDonationsWithAuthor(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether a donation with the given id is present.
func (r *DonationRepositoryPG) Exists(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1);`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("donation exists: %w", err)
	}
	return found, nil
}

func scanDonationsWithAuthor(rows pgx.Rows) ([]domain.Donation, error) {
	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var author domain.User
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.Location, &d.Condition, &d.Category, &d.CreatedAt,
			&author.Name, &author.Email, &author.ProfilePicture); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		author.ID = d.UserID
		d.Author = &author
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return items, nil
}

// attachImages loads the image rows for the given donations in one query.
func (r *DonationRepositoryPG) attachImages(ctx context.Context, donations []domain.Donation) error {
	if len(donations) == 0 {
		return nil
	}
	ids := make([]int64, len(donations))
	index := make(map[int64]*domain.Donation, len(donations))
	for i := range donations {
		ids[i] = donations[i].ID
		index[donations[i].ID] = &donations[i]
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, donation_id, file_path
FROM donation_images
WHERE donation_id = ANY ($1)
ORDER BY id;
`, ids)
	if err != nil {
		return fmt.Errorf("select donation images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.DonationImage
		if err := rows.Scan(&img.ID, &img.DonationID, &img.FilePath); err != nil {
			return fmt.Errorf("scan donation image: %w", err)
		}
		if d, ok := index[img.DonationID]; ok {
			d.Images = append(d.Images, img)
		}
	}
	return rows.Err()
}

func (r *DonationRepositoryPG) listComments(ctx context.Context, donationID int64) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.donation_id, c.user_id, c.comment_text, c.parent_comment_id, c.created_at, u.name
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.donation_id = $1
ORDER BY c.id;
`, donationID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	var items []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.DonationID, &c.UserID, &c.Text, &c.ParentID, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
