package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no document matches the identifier.
var ErrNotFound = errors.New("document not found")

// ErrInvalidID is returned when an identifier is not a 24 character hex ObjectID.
var ErrInvalidID = errors.New("invalid identifier")

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: %v", ErrInvalidID, id, err)
	}
	return oid, nil
}
