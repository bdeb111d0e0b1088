package catalog

import (
	"context"
	"strings"

	catalogRepo "okclinic/database/repository/catalog"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListActive(ctx context.Context) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, req models.ServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, serviceID string, req models.ServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, serviceID string) error
}

type DefaultCatalogService struct {
	Repo catalogRepo.ServiceRepository
}

func NewCatalogService(repo catalogRepo.ServiceRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo}
}

func validateStatus(status string) error {
	if status != models.ServiceStatusActive && status != models.ServiceStatusInactive {
		return apperr.Validation("status must be active or inactive")
	}
	return nil
}

func validateAmounts(req models.ServiceRequest) error {
	if req.Price != nil && *req.Price < 0 {
		return apperr.Validation("price cannot be negative")
	}
	if req.Duration != nil && *req.Duration < 0 {
		return apperr.Validation("duration cannot be negative")
	}
	return nil
}

func (s *DefaultCatalogService) ListActive(ctx context.Context) ([]models.Service, error) {
	return s.Repo.List(ctx, true)
}

func (s *DefaultCatalogService) ListAll(ctx context.Context) ([]models.Service, error) {
	return s.Repo.List(ctx, false)
}

func (s *DefaultCatalogService) CreateService(ctx context.Context, req models.ServiceRequest) (*models.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("Service name is required")
	}
	if req.Price == nil {
		return nil, apperr.Validation("Service price is required")
	}
	if err := validateAmounts(req); err != nil {
		return nil, err
	}
	svc := &models.Service{
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Price:       *req.Price,
		Description: strings.TrimSpace(req.Description),
		Status:      req.Status,
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if svc.Status == "" {
		svc.Status = models.ServiceStatusActive
	}
	if err := validateStatus(svc.Status); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Catalog service created", zap.String("serviceID", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

// UpdateService edits a catalog entry. Bookings keep the snapshot they were made with.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, serviceID string, req models.ServiceRequest) (*models.Service, error) {
	svc, err := s.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(req); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		svc.Name = v
	}
	if v := strings.TrimSpace(req.Category); v != "" {
		svc.Category = v
	}
	if v := strings.TrimSpace(req.Description); v != "" {
		svc.Description = v
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Status != "" {
		if err := validateStatus(req.Status); err != nil {
			return nil, err
		}
		svc.Status = req.Status
	}
	if err := s.Repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, serviceID string) error {
	if err := s.Repo.Delete(ctx, serviceID); err != nil {
		return err
	}
	utils.GetLogger().Info("Catalog service deleted", zap.String("serviceID", serviceID))
	return nil
}
