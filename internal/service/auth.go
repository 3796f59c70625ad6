// Package service — session business logic.
package service

import (
	"log/slog"
	"net/mail"

	"github.com/mhasan/show-catalog/internal/apperror"
	"github.com/mhasan/show-catalog/internal/auth"
)

// AuthService issues session tokens against an injected credential verifier.
//
// The verifier is an interface on purpose: today it's one configured
// email/password pair (auth.StaticCredentials), but swapping in a real
// credential store changes nothing here or in the handler — token issuance
// stays exactly as it is.
type AuthService struct {
	creds  auth.CredentialVerifier
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService with its dependencies injected.
func NewAuthService(creds auth.CredentialVerifier, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		creds:  creds,
		tokens: tokens,
		logger: logger,
	}
}

// Login validates the input shape, verifies the credentials, and issues a
// signed session token.
//
// Shape problems (bad email format, missing password) are validation errors
// and run BEFORE the credential check — a malformed request never reaches the
// verifier. Both violations are collected so the client sees them together.
func (s *AuthService) Login(email, password string) (string, error) {
	var violations []apperror.FieldError

	if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, apperror.FieldError{
			Field: "email", Message: "Please enter a valid email",
		})
	}
	if password == "" {
		violations = append(violations, apperror.FieldError{
			Field: "password", Message: "Password is required",
		})
	}
	if len(violations) > 0 {
		return "", apperror.Validation(violations...)
	}

	userID, err := s.creds.Verify(email, password)
	if err != nil {
		s.logger.Warn("login rejected", slog.String("email", email))
		return "", err
	}

	token, err := s.tokens.Generate(userID, email)
	if err != nil {
		s.logger.Error("token generation failed", slog.String("error", err.Error()))
		return "", err
	}

	s.logger.Info("login succeeded",
		slog.Int64("userId", userID),
		slog.String("email", email),
	)

	return token, nil
}

// Logout acknowledges a logout request. Tokens are stateless, so there is no
// server-side session to destroy — the client discards its token and the
// token itself simply expires. This exists so the API surface matches what
// clients expect from a login/logout pair.
func (s *AuthService) Logout() {
	s.logger.Info("logout acknowledged")
}
