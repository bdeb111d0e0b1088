package user

import (
	"context"
	"time"

	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/services/notification"
	"okclinic/utils"
)

type UserService interface {
	// Registration
	SendSignupCode(ctx context.Context, email string) error
	VerifySignupCode(ctx context.Context, email, code string) error
	Signup(ctx context.Context, req models.SignupRequest) (*AuthResponse, error)

	// Authentication
	Signin(ctx context.Context, email, password string) (*AuthResponse, error)

	// Password reset
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req models.PasswordResetRequest) error

	// Profile
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error)

	// Admin
	GetAllUsers(ctx context.Context) ([]models.User, error)
	AdminUpdateUser(ctx context.Context, userID string, req models.AdminUserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	SeedAdmin(ctx context.Context, email, password string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Codes    utils.CodeStore
	Notifier notification.Notifier

	CodeTTL  time.Duration
	TokenTTL time.Duration
}

func NewUserService(repo userRepo.UserRepository, codes utils.CodeStore, notifier notification.Notifier, codeTTL, tokenTTL time.Duration) *DefaultUserService {
	if codeTTL <= 0 {
		codeTTL = 10 * time.Minute
	}
	if tokenTTL <= 0 {
		tokenTTL = 2 * time.Hour
	}
	return &DefaultUserService{Repo: repo, Codes: codes, Notifier: notifier, CodeTTL: codeTTL, TokenTTL: tokenTTL}
}

// AuthResponse contains the user's profile and a signed access token.
type AuthResponse struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
}
