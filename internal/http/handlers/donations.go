package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
	"github.com/rhrony1513/CharityPulse-Backend/internal/storage"
)

// maxDonationImages caps how many uploads a single donation accepts; extra
// files are silently ignored.
const maxDonationImages = 5

const maxUploadMemory = 32 << 20

type donatorDTO struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	ProfilePicture *string `json:"profile_picture"`
}

type donationDTO struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Condition   string      `json:"condition"`
	Category    string      `json:"category"`
	Timestamp   time.Time   `json:"timestamp"`
	Donator     *donatorDTO `json:"donator,omitempty"`
	Images      []string    `json:"images"`
}

type commentDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"comment_text"`
	ParentID  *int64    `json:"parent_comment_id"`
	Timestamp time.Time `json:"timestamp"`
}

type donationDetailDTO struct {
	donationDTO
	Comments []commentDTO `json:"comments"`
}

// DonationsCreate persists a new donation for the current user, storing up
// to five image uploads alongside it.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}
	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title and description are required")
		return
	}

	var imagePaths []string
	files := r.MultipartForm.File["images"]
	if len(files) > maxDonationImages {
		files = files[:maxDonationImages]
	}
	for _, header := range files {
		if !storage.AllowedFile(header.Filename) {
			a.Logger.Debug().Str("filename", header.Filename).Msg("skipping disallowed upload")
			continue
		}
		src, err := header.Open()
		if err != nil {
			a.Logger.Error().Err(err).Str("filename", header.Filename).Msg("open upload failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to store image")
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("donations/%s%s", uuid.NewString(), ext)
		stored, err := a.Files.Write(r.Context(), key, src)
		src.Close()
		if err != nil {
			a.Logger.Error().Err(err).Str("filename", header.Filename).Msg("store upload failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to store image")
			return
		}
		imagePaths = append(imagePaths, stored)
	}

	donation := &domain.Donation{
		UserID:      a.currentUserID(r),
		Title:       title,
		Description: description,
		Location:    r.FormValue("location"),
		Condition:   r.FormValue("condition"),
		Category:    r.FormValue("category"),
	}
	if err := a.Donations.Create(r.Context(), donation, imagePaths); err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to post donation")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{"id": donation.ID, "message": "donation posted successfully"})
}

// DonationsList returns every donation with an author summary and image paths.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Donations.ListAll(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	items := make([]donationDTO, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationDTO(&donations[i], false))
	}
	a.json(w, http.StatusOK, items)
}

// DonationsDetail returns full detail for one donation, including the
// author's email and the flat comment list.
func (a *App) DonationsDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}
	donation, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "donation not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation")
		return
	}

	detail := donationDetailDTO{
		donationDTO: toDonationDTO(donation, true),
		Comments:    make([]commentDTO, 0, len(donation.Comments)),
	}
	for _, c := range donation.Comments {
		detail.Comments = append(detail.Comments, commentDTO{
			ID:        c.ID,
			UserID:    c.UserID,
			UserName:  c.AuthorName,
			Text:      c.Text,
			ParentID:  c.ParentID,
			Timestamp: c.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, detail)
}

func toDonationDTO(d *domain.Donation, withEmail bool) donationDTO {
	dto := donationDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		Condition:   d.Condition,
		Category:    d.Category,
		Timestamp:   d.CreatedAt,
		Images:      imagePaths(d.Images),
	}
	if d.Author != nil {
		dto.Donator = &donatorDTO{
			ID:             d.Author.ID,
			Name:           d.Author.Name,
			ProfilePicture: d.Author.ProfilePicture,
		}
		if withEmail {
			dto.Donator.Email = d.Author.Email
		}
	}
	return dto
}

func imagePaths(images []domain.DonationImage) []string {
	paths := make([]string, 0, len(images))
	for _, img := range images {
		paths = append(paths, "/uploads/"+img.FilePath)
	}
	return paths
}
