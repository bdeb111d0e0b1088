package user

import (
	"context"
	"strings"

	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile applies the self-service profile edit. Blank fields keep
// their stored value.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		u.Phone = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		u.Address = v
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Profile updated", zap.String("userID", userID))
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

// AdminUpdateUser lets staff edit any account, including its role.
func (s *DefaultUserService) AdminUpdateUser(ctx context.Context, userID string, req models.AdminUserUpdateRequest) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		u.Name = v
	}
	if v := normalizeEmail(req.Email); v != "" {
		u.Email = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		u.Phone = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		u.Address = v
	}
	if req.Role != "" {
		if req.Role != models.RoleCustomer && req.Role != models.RoleAdmin {
			return nil, apperr.Validation("role must be customer or admin")
		}
		u.Role = req.Role
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("User updated by admin", zap.String("userID", userID))
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	utils.GetLogger().Info("User deleted", zap.String("userID", userID))
	return nil
}

// SeedAdmin creates or resets the staff account registered under email.
func (s *DefaultUserService) SeedAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Admin email is required.")
	}
	if err := VerifyPassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	admin, err := s.Repo.UpsertByEmail(ctx, &models.User{
		Name:         "Clinic Admin",
		Email:        email,
		PasswordHash: hash,
		Address:      "Clinic",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Admin account seeded", zap.String("email", email))
	return admin, nil
}
