package handlers

import (
	"net/http"

	"github.com/dom/chateo-backend/internal/api/middleware"
	"github.com/dom/chateo-backend/internal/service"
)

type SessionHandler struct {
	userService    *service.UserService
	sessionService *service.SessionService
}

func NewSessionHandler(userService *service.UserService, sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		userService:    userService,
		sessionService: sessionService,
	}
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessionService.ClearCookie(w)
	writeJSON(w, http.StatusOK, Result{Success: true})
}
