package user

import (
	"fmt"
	"strings"

	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"golang.org/x/crypto/bcrypt"
)

const (
	codeLength        = 6
	minPasswordLength = 6
	bcryptCost        = 10

	signupCodePrefix   = "signup:"
	verifiedPrefix     = "verified:"
	resetCodePrefix    = "reset:"
	verifiedMarkFactor = 3 // verified marks outlive codes so the form can be finished
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyPassword checks the minimal password policy.
func VerifyPassword(pw string) error {
	if pw == "" {
		return apperr.Validation("Password is required.")
	}
	if len(pw) < minPasswordLength {
		return apperr.Validation(fmt.Sprintf("Password must be at least %d characters long.", minPasswordLength))
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *DefaultUserService) authResponse(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		ID:      u.ID,
		Token:   token,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}, nil
}
