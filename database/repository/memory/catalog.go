package memory

import (
	"context"
	"time"

	catalogRepo "okclinic/database/repository/catalog"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// ServiceStore is an in-memory service catalog.
type ServiceStore struct {
	s *store[models.Service]
}

var _ catalogRepo.ServiceRepository = (*ServiceStore)(nil)

func NewServiceStore() *ServiceStore {
	return &ServiceStore{s: newStore[models.Service]()}
}

func (c *ServiceStore) Create(_ context.Context, svc *models.Service) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	svc.ID = newID(svc.ID)
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	c.s.put(svc.ID, *svc)
	return nil
}

func (c *ServiceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	v, ok := c.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Service not found")
	}
	return &v, nil
}

func (c *ServiceStore) List(_ context.Context, activeOnly bool) ([]models.Service, error) {
	out := c.s.values(func(v *models.Service) bool {
		return !activeOnly || v.Status == models.ServiceStatusActive
	})
	sortByTimeDesc(out, func(s models.Service) time.Time { return s.CreatedAt })
	return out, nil
}

func (c *ServiceStore) Update(_ context.Context, svc *models.Service) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	existing, ok := c.s.items[svc.ID]
	if !ok {
		return apperr.NotFound("Service not found")
	}
	svc.CreatedAt = existing.CreatedAt
	svc.UpdatedAt = time.Now()
	c.s.put(svc.ID, *svc)
	return nil
}

func (c *ServiceStore) Delete(_ context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if !c.s.remove(id) {
		return apperr.NotFound("Service not found")
	}
	return nil
}
