package user

import (
	"context"
	"fmt"
	"strings"

	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

// SendSignupCode emails a one-time code to an address that is not yet registered.
func (s *DefaultUserService) SendSignupCode(ctx context.Context, email string) error {
	logger := utils.GetLogger()
	email = normalizeEmail(email)
	if email == "" {
		return apperr.Validation("Email is required.")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("SendSignupCode: lookup failed", zap.Error(err))
		return err
	}
	if existing != nil {
		return apperr.Validation("Email already registered.")
	}

	code, err := utils.GenerateNumericCode(codeLength)
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, signupCodePrefix+email, code, s.CodeTTL); err != nil {
		logger.Error("SendSignupCode: failed to store code", zap.Error(err))
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It will expire in %d minutes.", code, int(s.CodeTTL.Minutes()))
	if err := s.Notifier.Send(ctx, email, "Your signup verification code", body); err != nil {
		logger.Error("SendSignupCode: failed to send email", zap.String("email", email), zap.Error(err))
		return apperr.Wrap(err, "Failed to send verification email.")
	}
	logger.Info("Signup verification code sent", zap.String("email", email))
	return nil
}

// VerifySignupCode consumes a signup code and marks the address as verified.
func (s *DefaultUserService) VerifySignupCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return apperr.Validation("Email and code are required.")
	}

	stored, ok, err := s.Codes.Get(ctx, signupCodePrefix+email)
	if err != nil {
		return err
	}
	if !ok || stored != code {
		return apperr.Validation("Invalid or expired code.")
	}

	if err := s.Codes.Delete(ctx, signupCodePrefix+email); err != nil {
		return err
	}
	return s.Codes.Set(ctx, verifiedPrefix+email, "1", s.CodeTTL*verifiedMarkFactor)
}

// Signup creates a customer account for a verified address.
func (s *DefaultUserService) Signup(ctx context.Context, req models.SignupRequest) (*AuthResponse, error) {
	logger := utils.GetLogger()
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, apperr.Validation("Name and email are required.")
	}
	if err := VerifyPassword(req.Password); err != nil {
		return nil, err
	}

	if _, verified, err := s.Codes.Get(ctx, verifiedPrefix+email); err != nil {
		return nil, err
	} else if !verified {
		return nil, apperr.Validation("Please verify your email first.")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Email already exists.")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.Codes.Delete(ctx, verifiedPrefix+email); err != nil {
		logger.Warn("Signup: failed to clear verified mark", zap.String("email", email), zap.Error(err))
	}
	logger.Info("User registered", zap.String("userID", u.ID), zap.String("email", email))
	return s.authResponse(u)
}
