package pet

import (
	"context"
	"strings"

	petRepo "okclinic/database/repository/pet"
	userRepo "okclinic/database/repository/user"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"go.uber.org/zap"
)

type PetService interface {
	AddPet(ctx context.Context, ownerID string, req models.PetRequest) (*models.Pet, error)
	ListOwnerPets(ctx context.Context, ownerID string) ([]models.Pet, error)
	ListAllPets(ctx context.Context) ([]models.PetResponse, error)
	UpdatePet(ctx context.Context, petID string, req models.PetRequest) (*models.PetResponse, error)
	DeletePet(ctx context.Context, petID string) error
}

type DefaultPetService struct {
	Repo  petRepo.PetRepository
	Users userRepo.UserRepository
}

func NewPetService(repo petRepo.PetRepository, users userRepo.UserRepository) *DefaultPetService {
	return &DefaultPetService{Repo: repo, Users: users}
}

func validAge(age *float64) error {
	if age != nil && *age < 0 {
		return apperr.Validation("age cannot be negative")
	}
	return nil
}

func (s *DefaultPetService) AddPet(ctx context.Context, ownerID string, req models.PetRequest) (*models.Pet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("Pet name is required")
	}
	if err := validAge(req.Age); err != nil {
		return nil, err
	}
	p := &models.Pet{
		OwnerID: ownerID,
		Name:    name,
		Species: strings.TrimSpace(req.Species),
		Breed:   strings.TrimSpace(req.Breed),
		Age:     req.Age,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Pet registered", zap.String("petID", p.ID), zap.String("ownerID", ownerID))
	return p, nil
}

func (s *DefaultPetService) ListOwnerPets(ctx context.Context, ownerID string) ([]models.Pet, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *DefaultPetService) withOwner(ctx context.Context, p models.Pet) models.PetResponse {
	resp := models.PetResponse{Pet: p}
	if s.Users == nil {
		return resp
	}
	if owner, err := s.Users.GetByID(ctx, p.OwnerID); err == nil {
		resp.Owner = &models.UserSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}
	}
	return resp
}

// ListAllPets returns every pet with its owner resolved.
func (s *DefaultPetService) ListAllPets(ctx context.Context) ([]models.PetResponse, error) {
	pets, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PetResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, s.withOwner(ctx, p))
	}
	return out, nil
}

// UpdatePet is the staff edit; blank fields keep their stored value.
func (s *DefaultPetService) UpdatePet(ctx context.Context, petID string, req models.PetRequest) (*models.PetResponse, error) {
	p, err := s.Repo.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := validAge(req.Age); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(req.Species); v != "" {
		p.Species = v
	}
	if v := strings.TrimSpace(req.Breed); v != "" {
		p.Breed = v
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := s.withOwner(ctx, *p)
	return &resp, nil
}

func (s *DefaultPetService) DeletePet(ctx context.Context, petID string) error {
	return s.Repo.Delete(ctx, petID)
}
