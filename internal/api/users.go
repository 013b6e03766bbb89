package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prokopsimek/pmcrm/internal/auth"
	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/server"
)

type userRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// createdUser carries the raw API key alongside the stored user. Only the
// hash is persisted, so the key appears in this one response and never again.
type createdUser struct {
	domain.User
	APIKey string `json:"apiKey"`
}

// handleCreateUser serves POST /v1/users. The new user joins the caller's
// account and is issued a fresh API key.
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Email == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("user email is required").WithParam("email"))
		return
	}

	key, err := newAPIKey()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	u := &domain.User{
		ID:         uuid.New().String(),
		AccountID:  user.AccountID,
		Email:      req.Email,
		Name:       req.Name,
		APIKeyHash: auth.HashAPIKey(key),
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, &createdUser{User: *u, APIKey: key})
}

// handleOnboardUser serves POST /v1/users/{userID}/onboard, recording when
// the user completed onboarding. Users outside the caller's account surface
// as not-found.
func (h *Handler) handleOnboardUser(w http.ResponseWriter, r *http.Request) {
	user := server.UserFromContext(r.Context())
	if user == nil {
		h.writeError(w, r, domain.ErrAuthentication("missing user"))
		return
	}

	at := time.Now().UTC()
	if err := h.store.MarkUserOnboarded(r.Context(), user.AccountID, chi.URLParam(r, "userID"), at); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"onboardedAt": at})
}

func newAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "pmk_" + hex.EncodeToString(buf), nil
}
