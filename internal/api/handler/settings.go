package handler

import (
	"encoding/json"
	"net/http"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
)

// GetSettings handles GET /settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"profile":    h.settings.Profile(),
		"currency":   h.settings.Currency(),
		"week_start": h.settings.WeekStart(),
		"dark_mode":  h.settings.DarkMode(),
	})
}

// UpdateSettingsRequest represents the request body for updating settings.
// Absent fields are left unchanged.
type UpdateSettingsRequest struct {
	Profile   *domain.UserProfile `json:"profile"`
	Currency  *domain.Currency    `json:"currency"`
	WeekStart *domain.WeekStart   `json:"week_start"`
	DarkMode  *bool               `json:"dark_mode"`
}

// UpdateSettings handles PUT /settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	ctx := r.Context()
	if req.Profile != nil {
		h.settings.SetProfile(ctx, *req.Profile)
	}
	if req.Currency != nil {
		if err := h.settings.SetCurrency(ctx, *req.Currency); err != nil {
			h.respondWithError(w, err)
			return
		}
	}
	if req.WeekStart != nil {
		if err := h.settings.SetWeekStart(ctx, *req.WeekStart); err != nil {
			h.respondWithError(w, err)
			return
		}
	}
	if req.DarkMode != nil {
		h.settings.SetDarkMode(ctx, *req.DarkMode)
	}

	h.GetSettings(w, r)
}
