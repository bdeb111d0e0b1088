package models

import "time"

// Account roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a portal account, either a customer or clinic staff.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the identity shape other records embed: {id, name, email, role}.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Summary returns the public identity fields of the user.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsAdmin reports whether the account belongs to clinic staff.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// SignupRequest is the payload for creating a customer account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// SigninRequest carries login credentials.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the self-service profile edit payload.
type ProfileUpdateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AdminUserUpdateRequest is the staff payload for editing any account.
type AdminUserUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// CodeRequest carries an email and, when verifying, the emailed code.
type CodeRequest struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ResetCode string `json:"resetCode"`
}

// PasswordResetRequest completes a password reset.
type PasswordResetRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}
