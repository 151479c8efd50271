package repository

import (
	"context"
	"fmt"
	"time"

	"parcelio-api-server/internal/database"
	"parcelio-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository struct {
	client       *mongo.Client
	payments     *mongo.Collection
	parcels      *mongo.Collection
	transactions bool
	now          func() time.Time
}

// NewPaymentRepository builds the repository. With transactions enabled, recording a payment
// inserts it and marks the parcel paid inside one multi-document transaction, which needs a
// replica set or Atlas deployment.
func NewPaymentRepository(db *mongo.Database, transactions bool) *PaymentRepository {
	return &PaymentRepository{
		client:       db.Client(),
		payments:     db.Collection(database.PaymentsCollection),
		parcels:      db.Collection(database.ParcelsCollection),
		transactions: transactions,
		now:          time.Now,
	}
}

// List returns payments, most recently paid first. An empty email returns every payment.
func (r *PaymentRepository) List(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cursor, err := r.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

// Record inserts the payment and sets the referenced parcel's payment_status to paid.
// The parcel update is not required to match a document.
func (r *PaymentRepository) Record(ctx context.Context, payment *models.Payment) (*models.PaymentRecord, error) {
	parcelID, err := parseID(payment.ParcelID)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	payment.PaidAt = now

	write := func(ctx context.Context) (*models.PaymentRecord, error) {
		ins, err := r.payments.InsertOne(ctx, payment)
		if err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}

		update := bson.M{"$set": bson.M{
			models.ParcelFieldPaymentStatus: models.PaymentStatusPaid,
			models.ParcelFieldPaidAt:        now,
		}}
		upd, err := r.parcels.UpdateOne(ctx, bson.M{models.ParcelFieldID: parcelID}, update)
		if err != nil {
			return nil, fmt.Errorf("mark parcel paid: %w", err)
		}

		return &models.PaymentRecord{
			Payment: models.NewInsertResult(ins),
			Update:  models.NewUpdateResult(upd),
		}, nil
	}

	if !r.transactions {
		return write(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(context.Background())

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return write(sessCtx)
	})
	if err != nil {
		return nil, fmt.Errorf("payment transaction: %w", err)
	}
	return result.(*models.PaymentRecord), nil
}
