package user

import (
	"context"

	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Signin checks credentials and issues a token.
func (s *DefaultUserService) Signin(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required.")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Signin: lookup failed", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, apperr.Validation("No user found.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect password.")
	}
	return s.authResponse(u)
}
