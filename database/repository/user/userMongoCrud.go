// File: database/repository/user/userMongoCrud.go
package userRepo

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

func emailTaken() error {
	return apperr.Conflict("Email already exists.")
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return emailTaken()
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies an existing user document. An empty password hash leaves the stored one untouched.
func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	set := bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"address":   user.Address,
		"role":      user.Role,
		"updatedAt": user.UpdatedAt,
	}
	if user.PasswordHash != "" {
		set["passwordHash"] = user.PasswordHash
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return emailTaken()
		}
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// UpsertByEmail writes user under its email, keeping the existing ID when one exists.
func (r *MongoUserRepo) UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":         user.Name,
			"passwordHash": user.PasswordHash,
			"phone":        user.Phone,
			"address":      user.Address,
			"role":         user.Role,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"email":     user.Email,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(safeProjection)

	var out models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.Email, err)
	}
	return &out, nil
}
