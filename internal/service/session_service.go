package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/dom/chateo-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SessionCookieName = "chateo-session"

// SessionService mints and verifies the signed session credential.
// The server keeps no session table: validity is entirely determined
// by the token's signature and expiry.
type SessionService struct {
	cfg *config.Config
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{cfg: cfg}
}

func (s *SessionService) CreateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.SessionMaxAge).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken is fail-closed: any malformed, expired or tampered token
// reads as unauthenticated, never as an error.
func (s *SessionService) VerifyToken(tokenString string) (uuid.UUID, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func (s *SessionService) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

// UserIDFromRequest reads the session cookie from the inbound request.
// An absent cookie reads as unauthenticated.
func (s *SessionService) UserIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	return s.VerifyToken(cookie.Value)
}
