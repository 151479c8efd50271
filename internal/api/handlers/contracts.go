package handlers

import (
	"context"
	"io"

	"parcelio-api-server/internal/models"
)

// UserRepository lists user documents.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
}

// ParcelRepository is the parcel persistence used by ParcelHandler.
type ParcelRepository interface {
	List(ctx context.Context, createdBy string) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, models.Document, error)
	AddPhoto(ctx context.Context, id string, photo models.MediaPointer) (models.Document, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// PaymentRepository is the payment persistence used by PaymentHandler.
type PaymentRepository interface {
	List(ctx context.Context, email string) ([]models.Payment, error)
	Record(ctx context.Context, payment *models.Payment) (*models.PaymentRecord, error)
}

// IntentCreator creates payment intents at the payment gateway.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// PhotoUploader stores parcel photos and returns their public URL.
type PhotoUploader interface {
	UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error)
}

// Notifier pushes live events to a subscriber.
type Notifier interface {
	Publish(email, event string, data interface{})
}
