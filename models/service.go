package models

import "time"

// Catalog entry states.
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// Service is a named, priced, timed offering selectable when booking.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot copies the entry into the shape stored on a booking.
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		Name:        s.Name,
		Price:       s.Price,
		Duration:    s.Duration,
		Description: s.Description,
		Category:    s.Category,
	}
}

// ServiceRequest is the staff payload for creating or editing a catalog entry.
type ServiceRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
}
