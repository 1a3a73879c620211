package handlers

import (
	"net/http"

	"github.com/dom/chateo-backend/internal/api/middleware"
	"github.com/dom/chateo-backend/internal/domain"
	"github.com/dom/chateo-backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UserResponse struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	OnlineStatus    string  `json:"onlineStatus"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID.String(),
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		OnlineStatus:    string(user.OnlineStatus),
	}
}

// List returns every other user, ordered by first name.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.userService.ListOthers(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, NewUserResponse(user))
	}

	writeJSON(w, http.StatusOK, resp)
}
