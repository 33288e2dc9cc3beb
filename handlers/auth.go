package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/highq/crm-backend/services"
)

// AuthHandler handles authentication-related endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login checks credentials and returns the profile with a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing email or password.")
		return
	}

	profile, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  profile,
		"token": token,
	})
}

// VerifyToken checks a Bearer session token.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, http.StatusUnauthorized, "Missing authorization header.")
		return
	}

	authParts := strings.Split(authHeader, " ")
	if len(authParts) != 2 || authParts[0] != "Bearer" {
		writeError(w, http.StatusUnauthorized, "Invalid authorization format.")
		return
	}

	email, err := h.authService.VerifyJWT(authParts[1])
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"email":  email,
		"status": "valid",
	})
}

// RequestPasswordReset starts the reset flow. The response does not reveal
// whether the email is registered.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}

	if token := h.authService.RequestPasswordReset(req.Email); token != "" {
		// There is no mail delivery in this mock backend; the reset link
		// shows up in the server log instead.
		log.Printf("Password reset requested for %s, token: %s", req.Email, token)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset request received."})
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Missing token or new password.")
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired reset token.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully."})
}
