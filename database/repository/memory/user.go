package memory

import (
	"context"
	"strings"
	"time"

	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// UserStore is an in-memory identity store.
type UserStore struct {
	s *store[models.User]
}

var _ userRepo.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{s: newStore[models.User]()}
}

func (u *UserStore) emailOwnerLocked(email string) (string, bool) {
	for id, v := range u.s.items {
		if strings.EqualFold(v.Email, email) {
			return id, true
		}
	}
	return "", false
}

func (u *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	v, ok := u.s.items[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	v.PasswordHash = ""
	return &v, nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	id, ok := u.emailOwnerLocked(email)
	if !ok {
		return nil, nil
	}
	v := u.s.items[id]
	return &v, nil
}

func (u *UserStore) GetAll(_ context.Context) ([]models.User, error) {
	out := u.s.values(nil)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

func (u *UserStore) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, taken := u.emailOwnerLocked(user.Email); taken {
		return apperr.Conflict("Email already exists.")
	}
	user.ID = newID(user.ID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u.s.put(user.ID, *user)
	return nil
}

func (u *UserStore) Update(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	existing, ok := u.s.items[user.ID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	if owner, taken := u.emailOwnerLocked(user.Email); taken && owner != user.ID {
		return apperr.Conflict("Email already exists.")
	}
	if user.PasswordHash == "" {
		user.PasswordHash = existing.PasswordHash
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	u.s.put(user.ID, *user)
	return nil
}

func (u *UserStore) Delete(_ context.Context, id string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if !u.s.remove(id) {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (u *UserStore) UpsertByEmail(_ context.Context, user *models.User) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	now := time.Now()
	if id, ok := u.emailOwnerLocked(user.Email); ok {
		user.ID = id
		user.CreatedAt = u.s.items[id].CreatedAt
	} else {
		user.ID = newID("")
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	u.s.put(user.ID, *user)
	out := *user
	out.PasswordHash = ""
	return &out, nil
}
