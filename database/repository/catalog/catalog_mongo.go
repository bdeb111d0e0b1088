package catalogRepo

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

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo returns a ServiceRepository backed by the "services" collection.
func NewMongoServiceRepo(db *mongo.Database) (ServiceRepository, error) {
	repo := &mongoServiceRepo{coll: db.Collection("services")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service indexes: %w", err)
	}
	return repo, nil
}

func serviceNotFound() error {
	return apperr.NotFound("Service not found")
}

func (r *mongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *mongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, serviceNotFound()
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *mongoServiceRepo) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["status"] = models.ServiceStatusActive
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *mongoServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	svc.UpdatedAt = time.Now()
	set := bson.M{
		"name":        svc.Name,
		"category":    svc.Category,
		"price":       svc.Price,
		"duration":    svc.Duration,
		"description": svc.Description,
		"status":      svc.Status,
		"updatedAt":   svc.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": svc.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", svc.ID, err)
	}
	if res.MatchedCount == 0 {
		return serviceNotFound()
	}
	return nil
}

func (r *mongoServiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return serviceNotFound()
	}
	return nil
}
