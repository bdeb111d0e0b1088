package feedback

import (
	"context"
	"strings"

	feedbackRepo "okclinic/database/repository/feedback"
	"okclinic/models"
	"okclinic/utils"
	"okclinic/utils/apperr"
	"okclinic/utils/clock"

	"go.uber.org/zap"
)

const (
	minRating = 1
	maxRating = 5
)

type FeedbackService interface {
	Submit(ctx context.Context, author *models.User, req models.FeedbackRequest) (*models.Feedback, error)
	ListMine(ctx context.Context, userID string) ([]models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	Review(ctx context.Context, feedbackID string, req models.FeedbackReviewRequest) (*models.Feedback, error)
	Delete(ctx context.Context, feedbackID string) error
}

type DefaultFeedbackService struct {
	Repo  feedbackRepo.FeedbackRepository
	Clock clock.Clock
}

func NewFeedbackService(repo feedbackRepo.FeedbackRepository, c clock.Clock) *DefaultFeedbackService {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &DefaultFeedbackService{Repo: repo, Clock: c}
}

// Submit records feedback under the author's name and email at submission time.
func (s *DefaultFeedbackService) Submit(ctx context.Context, author *models.User, req models.FeedbackRequest) (*models.Feedback, error) {
	category := strings.TrimSpace(req.Category)
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if category == "" || subject == "" || message == "" || req.Rating == 0 {
		return nil, apperr.Validation("All fields required")
	}
	if req.Rating < minRating || req.Rating > maxRating {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	fb := &models.Feedback{
		UserID:      author.ID,
		UserName:    author.Name,
		UserEmail:   author.Email,
		Rating:      req.Rating,
		Category:    category,
		Subject:     subject,
		Message:     message,
		SubmittedAt: s.Clock.Now(),
		Status:      models.FeedbackStatusNew,
	}
	if err := s.Repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Feedback submitted", zap.String("feedbackID", fb.ID), zap.Int("rating", fb.Rating))
	return fb, nil
}

func (s *DefaultFeedbackService) ListMine(ctx context.Context, userID string) ([]models.Feedback, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *DefaultFeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return s.Repo.ListAll(ctx)
}

// Review updates the triage status and the staff note.
func (s *DefaultFeedbackService) Review(ctx context.Context, feedbackID string, req models.FeedbackReviewRequest) (*models.Feedback, error) {
	fb, err := s.Repo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Status); v != "" {
		fb.Status = v
	}
	fb.AdminNote = req.AdminNote
	if err := s.Repo.Update(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *DefaultFeedbackService) Delete(ctx context.Context, feedbackID string) error {
	return s.Repo.Delete(ctx, feedbackID)
}
