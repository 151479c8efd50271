package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is a recorded payment. ParcelID references a parcel by its raw hex identifier;
// nothing enforces that the parcel exists.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaymentMethod interface{}        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidDate      interface{}        `bson:"paid_date,omitempty" json:"paid_date,omitempty"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}

// PaymentRecord is the outcome of recording a payment: the insert and the parcel update.
type PaymentRecord struct {
	Payment *InsertResult
	Update  *UpdateResult
}
