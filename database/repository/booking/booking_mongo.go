package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) (*MongoBookingRepo, error) {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.CustomerID != "" {
		q["customer"] = f.CustomerID
	}
	if f.Date != "" {
		q["date"] = f.Date
	}
	if f.Time != "" {
		q["time"] = f.Time
	}
	switch {
	case f.Status != "":
		q["status"] = f.Status
	case f.ExcludeStatus != "":
		q["status"] = bson.M{"$ne": f.ExcludeStatus}
	}
	if f.ReminderNotSent {
		q["reminderSent"] = bson.M{"$ne": true}
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		r := bson.M{}
		if !f.From.IsZero() {
			r["$gte"] = f.From
		}
		if !f.To.IsZero() {
			r["$lte"] = f.To
		}
		q["appointmentDateTime"] = r
	}
	return q
}

func slotTaken() error {
	return apperr.Conflict("Slot already booked")
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return slotTaken()
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) FindOne(ctx context.Context, filter Filter) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter.bson()).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) Find(ctx context.Context, filter Filter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDateTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter.bson(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("Booking not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, slotTaken()
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) MarkReminderSent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"reminderSent": true, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to flag reminder for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Booking not found")
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Booking not found")
	}
	return nil
}
