package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rhrony1513/CharityPulse-Backend/internal/domain"
)

type commentRequest struct {
	Text     string `json:"comment_text"`
	ParentID *int64 `json:"parent_comment_id"`
}

// CommentsCreate adds a comment (or a reply) to a donation. The donation
// must exist, and a reply's parent must be a comment on the same donation.
func (a *App) CommentsCreate(w http.ResponseWriter, r *http.Request) {
	donationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no input data provided")
		return
	}
	if req.Text == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "comment_text is required")
		return
	}

	exists, err := a.Donations.Exists(r.Context(), donationID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("check donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to add comment")
		return
	}
	if !exists {
		a.error(w, http.StatusNotFound, "not_found", "donation not found")
		return
	}

	if req.ParentID != nil {
		parent, err := a.Comments.GetByID(r.Context(), *req.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusBadRequest, "bad_request", "parent comment not found")
				return
			}
			a.Logger.Error().Err(err).Msg("check parent comment failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to add comment")
			return
		}
		if parent.DonationID != donationID {
			a.error(w, http.StatusBadRequest, "bad_request", "parent comment belongs to another donation")
			return
		}
	}

	comment := &domain.Comment{
		DonationID: donationID,
		UserID:     a.currentUserID(r),
		Text:       req.Text,
		ParentID:   req.ParentID,
	}
	if err := a.Comments.Create(r.Context(), comment); err != nil {
		a.Logger.Error().Err(err).Msg("create comment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to add comment")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{"id": comment.ID, "message": "comment added successfully"})
}
