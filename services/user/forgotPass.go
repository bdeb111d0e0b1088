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

// RequestPasswordReset emails a reset code to a registered address.
func (s *DefaultUserService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := utils.GetLogger()
	email = normalizeEmail(email)
	if email == "" {
		return apperr.Validation("Email is required.")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("No user found.")
	}

	code, err := utils.GenerateNumericCode(codeLength)
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, resetCodePrefix+email, code, s.CodeTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset code is %s. It will expire in %d minutes.", code, int(s.CodeTTL.Minutes()))
	if err := s.Notifier.Send(ctx, email, "Your Password Reset Code", body); err != nil {
		logger.Error("RequestPasswordReset: failed to send email", zap.String("email", email), zap.Error(err))
		return apperr.Wrap(err, "Failed to send reset email.")
	}
	logger.Info("Password reset code sent", zap.String("userID", u.ID))
	return nil
}

func (s *DefaultUserService) checkResetCode(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return apperr.Validation("Email and reset code are required.")
	}
	stored, ok, err := s.Codes.Get(ctx, resetCodePrefix+email)
	if err != nil {
		return err
	}
	if !ok || stored != code {
		return apperr.Validation("Invalid or expired reset code.")
	}
	return nil
}

// VerifyResetCode reports whether code is the live reset code for email.
// The code stays valid until the password is reset.
func (s *DefaultUserService) VerifyResetCode(ctx context.Context, email, code string) error {
	return s.checkResetCode(ctx, normalizeEmail(email), strings.TrimSpace(code))
}

// ResetPassword replaces the password once the reset code checks out.
func (s *DefaultUserService) ResetPassword(ctx context.Context, req models.PasswordResetRequest) error {
	email := normalizeEmail(req.Email)
	if err := s.checkResetCode(ctx, email, strings.TrimSpace(req.ResetCode)); err != nil {
		return err
	}
	if err := VerifyPassword(req.NewPassword); err != nil {
		return err
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.Validation("Invalid or expired reset code.")
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	if err := s.Codes.Delete(ctx, resetCodePrefix+email); err != nil {
		utils.GetLogger().Warn("ResetPassword: failed to clear reset code", zap.Error(err))
	}
	utils.GetLogger().Info("Password reset", zap.String("userID", u.ID))
	return nil
}
