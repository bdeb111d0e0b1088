package catalogRepo

import (
	"context"

	"okclinic/models"
)

// ServiceRepository is the service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// List returns catalog entries newest first, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id string) error
}
