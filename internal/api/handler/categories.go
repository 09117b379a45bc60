package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"moneypulse/internal/category"
	"moneypulse/internal/domain"
	"moneypulse/internal/util"
)

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.categories.List(),
	})
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name  string                 `json:"name"`
	Icon  string                 `json:"icon"`
	Color string                 `json:"color"`
	Type  domain.TransactionType `json:"type"`
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	created, err := h.categories.Create(r.Context(), req.Name, req.Icon, req.Color, req.Type)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, created)
}

// UpdateCategoryRequest represents the request body for updating a category.
// Absent fields are left unchanged.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// UpdateCategory handles PUT /categories/{categoryID}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	updated, err := h.categories.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), category.Update{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /categories/{categoryID}. Deleting the last
// category of a type is refused.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
