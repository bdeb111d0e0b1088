package models

import "time"

// Pet is an animal registered by a customer.
type Pet struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"owner" json:"ownerId"`
	Name      string    `bson:"name" json:"name"`
	Species   string    `bson:"species,omitempty" json:"species,omitempty"`
	Breed     string    `bson:"breed,omitempty" json:"breed,omitempty"`
	Age       *float64  `bson:"age,omitempty" json:"age,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PetSummary is the subset of a pet embedded into booking responses.
type PetSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Species string   `json:"species,omitempty"`
	Breed   string   `json:"breed,omitempty"`
	Age     *float64 `json:"age,omitempty"`
}

// Summary returns the display fields of the pet.
func (p *Pet) Summary() *PetSummary {
	if p == nil {
		return nil
	}
	return &PetSummary{ID: p.ID, Name: p.Name, Species: p.Species, Breed: p.Breed, Age: p.Age}
}

// PetRequest is the payload for creating or editing a pet.
type PetRequest struct {
	Name    string   `json:"name"`
	Species string   `json:"species"`
	Breed   string   `json:"breed"`
	Age     *float64 `json:"age"`
}

// PetResponse is a pet with its owner resolved, used by staff views.
type PetResponse struct {
	Pet   `bson:",inline"`
	Owner *UserSummary `json:"owner,omitempty"`
}
