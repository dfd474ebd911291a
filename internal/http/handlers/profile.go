package handlers

import (
	"net/http"
)

type profileDTO struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Age            *int          `json:"age"`
	Phone          *string       `json:"phone"`
	DateOfBirth    *string       `json:"date_of_birth"`
	ProfilePicture *string       `json:"profile_picture"`
	Donations      []donationDTO `json:"donations"`
}

// Profile returns the current user's account details and the donations they
// authored, with image paths but without comments.
func (a *App) Profile(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)

	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Int64("user_id", userID).Msg("load profile failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}

	donations, err := a.Donations.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Int64("user_id", userID).Msg("load user donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}

	var dob *string
	if user.DateOfBirth != nil {
		s := user.DateOfBirth.Format("2006-01-02")
		dob = &s
	}

	profile := profileDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Age:            user.Age,
		Phone:          user.Phone,
		DateOfBirth:    dob,
		ProfilePicture: user.ProfilePicture,
		Donations:      make([]donationDTO, 0, len(donations)),
	}
	for i := range donations {
		dto := toDonationDTO(&donations[i], false)
		dto.Donator = nil
		profile.Donations = append(profile.Donations, dto)
	}

	a.json(w, http.StatusOK, profile)
}
