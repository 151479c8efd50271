// server/internal/models/common.go
package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Document is a schema-less record as stored in MongoDB and returned by the API.
type Document = bson.M

// MediaPointer references a file kept in S3 (or behind CloudFront).
type MediaPointer struct {
	ID       string `bson:"id" json:"id"`
	URL      string `bson:"url" json:"url"`
	FileName string `bson:"fileName" json:"fileName"`
	FileType string `bson:"fileType" json:"fileType"`
}

// InsertResult mirrors the acknowledgement clients receive for an insert.
type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// DeleteResult mirrors the acknowledgement clients receive for a delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResult mirrors the acknowledgement clients receive for an update.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

func NewInsertResult(res *mongo.InsertOneResult) *InsertResult {
	return &InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func NewUpdateResult(res *mongo.UpdateResult) *UpdateResult {
	return &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// InsertedHex returns the generated identifier as hex, or "" when it is not an ObjectID.
func (r *InsertResult) InsertedHex() string {
	if oid, ok := r.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}
