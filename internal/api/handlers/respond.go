package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/chateo-backend/internal/service"
)

// Result is the caller-facing envelope for the auth operations.
type Result struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	UserID       string `json:"userId,omitempty"`
	ExistingUser *bool  `json:"existingUser,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), Result{Success: false, Error: errorMessage(err)})
}

// errorMessage maps error kinds to the stable, user-displayable
// sentences. Display wording lives here only; core logic never
// carries these strings.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return "Invalid input."
	case errors.Is(err, service.ErrInvalidPhone):
		return "Invalid phone number."
	case errors.Is(err, service.ErrInvalidCode):
		return "Code must be 6 digits."
	case errors.Is(err, service.ErrRateLimited):
		return "Too many attempts. Please try again later."
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		return "Invalid or expired code."
	case errors.Is(err, service.ErrPhoneNotVerified):
		return "Phone number not verified."
	case errors.Is(err, service.ErrAccountExists):
		return "Account already exists."
	case errors.Is(err, service.ErrFirstNameRequired):
		return "First name is required."
	case errors.Is(err, service.ErrFirstNameTooLong):
		return "First name must be 50 characters or less."
	case errors.Is(err, service.ErrLastNameTooLong):
		return "Last name must be 50 characters or less."
	default:
		return "Something went wrong. Please try again."
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrTransient):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
