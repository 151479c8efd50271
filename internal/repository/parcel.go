package repository

import (
	"context"
	"errors"
	"fmt"

	"parcelio-api-server/internal/database"
	"parcelio-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ParcelRepository struct {
	coll *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{coll: db.Collection(database.ParcelsCollection)}
}

// List returns parcels, newest first. An empty createdBy returns every parcel.
func (r *ParcelRepository) List(ctx context.Context, createdBy string) ([]models.Document, error) {
	filter := bson.M{}
	if createdBy != "" {
		filter[models.ParcelFieldCreatedBy] = createdBy
	}

	opts := options.Find().SetSort(bson.D{{Key: models.ParcelFieldCreatedAt, Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}
	defer cursor.Close(ctx)

	parcels := []models.Document{}
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	return parcels, nil
}

func (r *ParcelRepository) Get(ctx context.Context, id string) (models.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var parcel models.Document
	err = r.coll.FindOne(ctx, bson.M{models.ParcelFieldID: oid}).Decode(&parcel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find parcel: %w", err)
	}
	return parcel, nil
}

// Create inserts doc as given; the store generates the identifier.
func (r *ParcelRepository) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert parcel: %w", err)
	}
	return models.NewInsertResult(res), nil
}

// Delete removes the parcel and returns it alongside the result. A miss yields
// DeletedCount 0 and a nil document, not an error.
func (r *ParcelRepository) Delete(ctx context.Context, id string) (*models.DeleteResult, models.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, nil, err
	}

	var deleted models.Document
	err = r.coll.FindOneAndDelete(ctx, bson.M{models.ParcelFieldID: oid}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 0}, nil, nil
		}
		return nil, nil, fmt.Errorf("delete parcel: %w", err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, deleted, nil
}

// AddPhoto appends a photo pointer to the parcel and returns the updated parcel.
func (r *ParcelRepository) AddPhoto(ctx context.Context, id string, photo models.MediaPointer) (models.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$push": bson.M{models.ParcelFieldPhotos: photo}}

	var parcel models.Document
	err = r.coll.FindOneAndUpdate(ctx, bson.M{models.ParcelFieldID: oid}, update, opts).Decode(&parcel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("add parcel photo: %w", err)
	}
	return parcel, nil
}

// Exists reports whether a parcel with the identifier is stored.
func (r *ParcelRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	count, err := r.coll.CountDocuments(ctx, bson.M{models.ParcelFieldID: oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count parcels: %w", err)
	}
	return count > 0, nil
}
