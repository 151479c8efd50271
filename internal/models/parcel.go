package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel field names shared by handlers and the repository.
const (
	ParcelFieldID            = "_id"
	ParcelFieldCreatedBy     = "created_by"
	ParcelFieldCreatedAt     = "createdAt"
	ParcelFieldPaymentStatus = "payment_status"
	ParcelFieldPaidAt        = "paidAt"
	ParcelFieldPhotos        = "photos"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// NewParcel turns a decoded request body into the document to insert.
// The body is kept as sent apart from: a client "_id" is dropped so the store generates one,
// "createdAt" is stamped (or parsed from RFC 3339) so ordering compares timestamps,
// and "payment_status" defaults to unpaid.
func NewParcel(body map[string]interface{}, now time.Time) Document {
	doc := make(Document, len(body)+2)
	for k, v := range body {
		if k == ParcelFieldID {
			continue
		}
		doc[k] = v
	}

	switch v := doc[ParcelFieldCreatedAt].(type) {
	case nil:
		doc[ParcelFieldCreatedAt] = now
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			doc[ParcelFieldCreatedAt] = ts
		}
	}

	if _, ok := doc[ParcelFieldPaymentStatus]; !ok {
		doc[ParcelFieldPaymentStatus] = PaymentStatusUnpaid
	}
	return doc
}

// CreatedBy returns the owner email of a stored parcel, if any.
func CreatedBy(doc Document) string {
	s, _ := doc[ParcelFieldCreatedBy].(string)
	return s
}

// ParcelID returns the hex identifier of a stored parcel, if any.
func ParcelID(doc Document) string {
	if oid, ok := doc[ParcelFieldID].(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
