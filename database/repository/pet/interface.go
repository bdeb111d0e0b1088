package petRepo

import (
	"context"

	"okclinic/models"
)

// PetRepository is the pet registry.
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id string) (*models.Pet, error)
	// GetByIDAndOwner returns apperr.ErrNotFound when the pet is absent or owned by someone else.
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	ListAll(ctx context.Context) ([]models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id string) error
}
