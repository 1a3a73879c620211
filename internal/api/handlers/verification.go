package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/chateo-backend/internal/service"
)

type VerificationHandler struct {
	verificationService *service.VerificationService
	sessionService      *service.SessionService
}

func NewVerificationHandler(verificationService *service.VerificationService, sessionService *service.SessionService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		sessionService:      sessionService,
	}
}

type RequestCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type VerifyCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

func (h *VerificationHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}

	if err := h.verificationService.RequestCode(r.Context(), req.PhoneNumber); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Result{Success: true})
}

// VerifyCode checks the submitted code. When the phone already belongs
// to an account, a session is issued for it right away.
func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}

	result, err := h.verificationService.CheckCode(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.ExistingUser {
		token, err := h.sessionService.CreateToken(result.User.ID)
		if err != nil {
			writeError(w, service.ErrTransient)
			return
		}
		h.sessionService.SetCookie(w, token)
	}

	existing := result.ExistingUser
	writeJSON(w, http.StatusOK, Result{Success: true, ExistingUser: &existing})
}

func (h *VerificationHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidInput)
		return
	}

	if err := h.verificationService.ResendCode(r.Context(), req.PhoneNumber); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Result{Success: true})
}
