package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/chateo-backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	sessionService *service.SessionService
}

func NewProfileHandler(profileService *service.ProfileService, sessionService *service.SessionService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		sessionService: sessionService,
	}
}

type CreateProfileRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	FirstName   string  `json:"firstName"`
	LastName    *string `json:"lastName"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}

	user, err := h.profileService.CreateProfile(r.Context(), service.CreateProfileInput{
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.sessionService.CreateToken(user.ID)
	if err != nil {
		writeError(w, service.ErrTransient)
		return
	}
	h.sessionService.SetCookie(w, token)

	writeJSON(w, http.StatusOK, Result{Success: true, UserID: user.ID.String()})
}
