package memory

import (
	"context"
	"time"

	feedbackRepo "okclinic/database/repository/feedback"
	"okclinic/models"
	"okclinic/utils/apperr"
)

// FeedbackStore is an in-memory feedback store.
type FeedbackStore struct {
	s *store[models.Feedback]
}

var _ feedbackRepo.FeedbackRepository = (*FeedbackStore)(nil)

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{s: newStore[models.Feedback]()}
}

func bySubmittedDesc(items []models.Feedback) []models.Feedback {
	sortByTimeDesc(items, func(f models.Feedback) time.Time { return f.SubmittedAt })
	return items
}

func (f *FeedbackStore) Create(_ context.Context, fb *models.Feedback) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	fb.ID = newID(fb.ID)
	f.s.put(fb.ID, *fb)
	return nil
}

func (f *FeedbackStore) GetByID(_ context.Context, id string) (*models.Feedback, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	v, ok := f.s.items[id]
	if !ok {
		return nil, apperr.NotFound("Feedback not found")
	}
	return &v, nil
}

func (f *FeedbackStore) ListByUser(_ context.Context, userID string) ([]models.Feedback, error) {
	return bySubmittedDesc(f.s.values(func(v *models.Feedback) bool { return v.UserID == userID })), nil
}

func (f *FeedbackStore) ListAll(_ context.Context) ([]models.Feedback, error) {
	return bySubmittedDesc(f.s.values(nil)), nil
}

func (f *FeedbackStore) Update(_ context.Context, fb *models.Feedback) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	existing, ok := f.s.items[fb.ID]
	if !ok {
		return apperr.NotFound("Feedback not found")
	}
	existing.Status = fb.Status
	existing.AdminNote = fb.AdminNote
	f.s.put(fb.ID, existing)
	*fb = existing
	return nil
}

func (f *FeedbackStore) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if !f.s.remove(id) {
		return apperr.NotFound("Feedback not found")
	}
	return nil
}
