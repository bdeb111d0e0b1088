package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"okclinic/models"
	"okclinic/utils/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo returns a FeedbackRepository backed by the "feedbacks" collection.
func NewMongoFeedbackRepo(db *mongo.Database) (FeedbackRepository, error) {
	repo := &mongoFeedbackRepo{coll: db.Collection("feedbacks")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "submittedAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback indexes: %w", err)
	}
	return repo, nil
}

func feedbackNotFound() error {
	return apperr.NotFound("Feedback not found")
}

func (r *mongoFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *mongoFeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	var fb models.Feedback
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&fb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, feedbackNotFound()
		}
		return nil, fmt.Errorf("failed to fetch feedback %s: %w", id, err)
	}
	return &fb, nil
}

func (r *mongoFeedbackRepo) list(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Feedback{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return items, nil
}

func (r *mongoFeedbackRepo) ListByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *mongoFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoFeedbackRepo) Update(ctx context.Context, fb *models.Feedback) error {
	set := bson.M{"status": fb.Status, "adminNote": fb.AdminNote}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": fb.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update feedback %s: %w", fb.ID, err)
	}
	if res.MatchedCount == 0 {
		return feedbackNotFound()
	}
	return nil
}

func (r *mongoFeedbackRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete feedback %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return feedbackNotFound()
	}
	return nil
}
