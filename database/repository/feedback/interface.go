package feedbackRepo

import (
	"context"

	"okclinic/models"
)

// FeedbackRepository is the feedback store.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	// ListByUser and ListAll return newest submissions first.
	ListByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Update(ctx context.Context, fb *models.Feedback) error
	Delete(ctx context.Context, id string) error
}
