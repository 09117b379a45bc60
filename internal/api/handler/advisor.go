package handler

import (
	"encoding/json"
	"net/http"

	"moneypulse/internal/advisor"
	"moneypulse/internal/util"
)

// AdvisorChatRequest represents the request body for an advisor question.
// History carries the prior turns; the session state lives with the client.
type AdvisorChatRequest struct {
	Message string            `json:"message"`
	History []advisor.Message `json:"history"`
}

// AdvisorChat handles POST /advisor/chat.
func (h *Handler) AdvisorChat(w http.ResponseWriter, r *http.Request) {
	var req AdvisorChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	reply, err := h.advisor.Ask(r.Context(), req.History, req.Message)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"reply": reply,
	})
}
