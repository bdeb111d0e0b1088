package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"okclinic/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the bookings indexes, including the slot guard: a
// partial unique index on (date, time) over every booking that is not cancelled.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	activeStatuses := bson.A{models.BookingStatusUpcoming, models.BookingStatusCompleted}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("active_slot_unique").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": activeStatuses}}),
		},
		{
			Keys:    bson.D{{Key: "customer", Value: 1}, {Key: "appointmentDateTime", Value: 1}},
			Options: options.Index().SetName("customer_appointment_idx"),
		},
		// Serves the reminder sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "reminderSent", Value: 1}, {Key: "appointmentDateTime", Value: 1}},
			Options: options.Index().SetName("reminder_due_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
