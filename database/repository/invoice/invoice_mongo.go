package invoiceRepo

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

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo returns an InvoiceRepository backed by the "invoices" collection.
func NewMongoInvoiceRepo(db *mongo.Database) (InvoiceRepository, error) {
	repo := &mongoInvoiceRepo{coll: db.Collection("invoices")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice indexes: %w", err)
	}
	return repo, nil
}

func invoiceNotFound() error {
	return apperr.NotFound("Invoice not found")
}

var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}

func (r *mongoInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	if inv.Services == nil {
		inv.Services = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *mongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, invoiceNotFound()
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *mongoInvoiceRepo) list(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer cursor.Close(ctx)

	invoices := []models.Invoice{}
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, nil
}

func (r *mongoInvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{"customer": customerID})
}

func (r *mongoInvoiceRepo) ListAll(ctx context.Context) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoInvoiceRepo) Pay(ctx context.Context, id, customerID, paymentMethod, paidDate string) (*models.Invoice, error) {
	update := bson.M{"$set": bson.M{
		"status":        models.InvoiceStatusPaid,
		"paymentMethod": paymentMethod,
		"paidDate":      paidDate,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var inv models.Invoice
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "customer": customerID}, update, opts).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, invoiceNotFound()
		}
		return nil, fmt.Errorf("failed to pay invoice %s: %w", id, err)
	}
	return &inv, nil
}

func (r *mongoInvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	inv.UpdatedAt = time.Now()
	set := bson.M{
		"status":        inv.Status,
		"amount":        inv.Amount,
		"paymentMethod": inv.PaymentMethod,
		"paidDate":      inv.PaidDate,
		"updatedAt":     inv.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": inv.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", inv.ID, err)
	}
	if res.MatchedCount == 0 {
		return invoiceNotFound()
	}
	return nil
}

func (r *mongoInvoiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return invoiceNotFound()
	}
	return nil
}
