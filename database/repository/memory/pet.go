package memory

import (
	"context"
	"sort"
	"time"

	petRepo "okclinic/database/repository/pet"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// PetStore is an in-memory pet registry.
type PetStore struct {
	s *store[models.Pet]
}

var _ petRepo.PetRepository = (*PetStore)(nil)

func NewPetStore() *PetStore {
	return &PetStore{s: newStore[models.Pet]()}
}

func (p *PetStore) Create(_ context.Context, pet *models.Pet) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	pet.ID = newID(pet.ID)
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt
	p.s.put(pet.ID, *pet)
	return nil
}

func (p *PetStore) GetByID(_ context.Context, id string) (*models.Pet, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	v, ok := p.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Pet not found")
	}
	return &v, nil
}

func (p *PetStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Pet, error) {
	v, err := p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, apperr.NotFound("Pet not found")
	}
	return v, nil
}

func byName(pets []models.Pet) []models.Pet {
	sort.SliceStable(pets, func(i, j int) bool { return pets[i].Name < pets[j].Name })
	return pets
}

func (p *PetStore) ListByOwner(_ context.Context, ownerID string) ([]models.Pet, error) {
	return byName(p.s.values(func(v *models.Pet) bool { return v.OwnerID == ownerID })), nil
}

func (p *PetStore) ListAll(_ context.Context) ([]models.Pet, error) {
	return byName(p.s.values(nil)), nil
}

func (p *PetStore) Update(_ context.Context, pet *models.Pet) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	existing, ok := p.s.items[pet.ID]
	if !ok {
		return apperr.NotFound("Pet not found")
	}
	existing.Name = pet.Name
	existing.Species = pet.Species
	existing.Breed = pet.Breed
	existing.Age = pet.Age
	existing.UpdatedAt = time.Now()
	p.s.put(pet.ID, existing)
	*pet = existing
	return nil
}

func (p *PetStore) Delete(_ context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if !p.s.remove(id) {
		return apperr.NotFound("Pet not found")
	}
	return nil
}
