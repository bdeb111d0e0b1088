package petRepo

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

type mongoPetRepo struct {
	coll *mongo.Collection
}

// NewMongoPetRepo returns a PetRepository backed by the "pets" collection.
func NewMongoPetRepo(db *mongo.Database) (PetRepository, error) {
	repo := &mongoPetRepo{coll: db.Collection("pets")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoPetRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create pet indexes: %w", err)
	}
	return nil
}

func petNotFound() error {
	return apperr.NotFound("Pet not found")
}

func (r *mongoPetRepo) Create(ctx context.Context, pet *models.Pet) error {
	if pet.ID == "" {
		pet.ID = uuid.New().String()
	}
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt

	if _, err := r.coll.InsertOne(ctx, pet); err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

func (r *mongoPetRepo) findOne(ctx context.Context, filter bson.M) (*models.Pet, error) {
	var pet models.Pet
	if err := r.coll.FindOne(ctx, filter).Decode(&pet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, petNotFound()
		}
		return nil, fmt.Errorf("failed to fetch pet: %w", err)
	}
	return &pet, nil
}

func (r *mongoPetRepo) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoPetRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Pet, error) {
	return r.findOne(ctx, bson.M{"id": id, "owner": ownerID})
}

func (r *mongoPetRepo) list(ctx context.Context, filter bson.M) ([]models.Pet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer cursor.Close(ctx)

	pets := []models.Pet{}
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}
	return pets, nil
}

func (r *mongoPetRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	return r.list(ctx, bson.M{"owner": ownerID})
}

func (r *mongoPetRepo) ListAll(ctx context.Context) ([]models.Pet, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoPetRepo) Update(ctx context.Context, pet *models.Pet) error {
	pet.UpdatedAt = time.Now()
	set := bson.M{
		"name":      pet.Name,
		"species":   pet.Species,
		"breed":     pet.Breed,
		"age":       pet.Age,
		"updatedAt": pet.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": pet.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update pet %s: %w", pet.ID, err)
	}
	if res.MatchedCount == 0 {
		return petNotFound()
	}
	return nil
}

func (r *mongoPetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pet %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return petNotFound()
	}
	return nil
}
