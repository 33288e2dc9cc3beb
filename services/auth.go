package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/highq/crm-backend/database"
	"github.com/highq/crm-backend/model"
)

// AuthService handles logins, session tokens and the password-reset flow.
// Reset tokens are one-time use and held in memory only.
type AuthService struct {
	directory   *database.DirectoryService
	jwtSecret   []byte
	resetTokens map[string]string // token -> email
}

func NewAuthService(directory *database.DirectoryService, jwtSecret string) *AuthService {
	if jwtSecret == "" {
		jwtSecret = "your-default-secret-key-change-in-production"
	}
	return &AuthService{
		directory:   directory,
		jwtSecret:   []byte(jwtSecret),
		resetTokens: make(map[string]string),
	}
}

// Profile is the authenticated identity returned to the frontend.
type Profile struct {
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Role     model.UserRole `json:"role"`
	MemberID string         `json:"memberId,omitempty"`
}

// Login checks credentials and returns the account profile with a signed
// session token.
func (s *AuthService) Login(email, password string) (Profile, string, error) {
	account, ok, err := s.directory.AccountByEmail(email)
	if err != nil {
		return Profile{}, "", err
	}
	if !ok || account.Password != password {
		return Profile{}, "", errors.New("invalid email or password")
	}

	token, err := s.createJWT(account.Email)
	if err != nil {
		return Profile{}, "", err
	}

	profile := Profile{
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
	}
	if account.MemberID.Valid {
		profile.MemberID = account.MemberID.String
	}
	return profile, token, nil
}

// createJWT signs a session token for the given email, valid for 7 days.
func (s *AuthService) createJWT(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyJWT verifies a session token and returns the email it was issued
// for.
func (s *AuthService) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim missing")
	}
	return email, nil
}

// RequestPasswordReset issues a one-time reset token for the account. The
// token is returned either way; whether the email exists is not revealed to
// the caller.
func (s *AuthService) RequestPasswordReset(email string) string {
	_, ok, err := s.directory.AccountByEmail(email)
	if err != nil || !ok {
		return ""
	}
	token := uuid.NewString()
	s.resetTokens[token] = email
	return token
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	email, ok := s.resetTokens[token]
	if !ok {
		return errors.New("invalid or expired reset token")
	}
	delete(s.resetTokens, token)

	return s.directory.UpdatePassword(email, newPassword)
}
