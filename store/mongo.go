package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"constituency_site/models"
)

// MongoStore persists records in a single MongoDB collection, one document
// per record, keyed by the ObjectID Mongo assigns on insert.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps the given collection. db may be nil when the
// connection could not be established at startup; every operation then
// returns ErrStoreUnavailable.
func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	if db == nil {
		return &MongoStore{}
	}
	return &MongoStore{coll: db.Collection(collection)}
}

func (s *MongoStore) Create(ctx context.Context, rec models.Record) (string, error) {
	if s.coll == nil {
		return "", ErrStoreUnavailable
	}

	rec.ID = primitive.NilObjectID
	rec.CreatedAt = time.Now().UTC()

	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return "", &PersistenceError{Op: "create", Err: err}
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", &PersistenceError{Op: "create", Err: mongo.ErrNilDocument}
	}
	return oid.Hex(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, rec models.Record) error {
	if s.coll == nil {
		return ErrStoreUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any document; same no-op as an
		// unknown one.
		return nil
	}

	// Replace every mutable field; created_at stays as written at insert.
	update := bson.M{"$set": bson.M{
		"vidhan_sabha":  rec.VidhanSabha,
		"block":         rec.Block,
		"panchayat":     rec.Panchayat,
		"name":          rec.Name,
		"designation":   rec.Designation,
		"mobile_number": rec.MobileNumber,
		"address":       rec.Address,
	}}

	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return &PersistenceError{Op: "update", Err: err}
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if s.coll == nil {
		return ErrStoreUnavailable
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

func (s *MongoStore) Query(ctx context.Context, f Filter) ([]models.Record, error) {
	if s.coll == nil {
		return nil, ErrStoreUnavailable
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.coll.Find(ctx, f.ToBSON(), findOptions)
	if err != nil {
		return nil, &PersistenceError{Op: "query", Err: err}
	}
	defer cursor.Close(ctx)

	records := []models.Record{}
	for cursor.Next(ctx) {
		var rec models.Record
		if err := cursor.Decode(&rec); err != nil {
			return nil, &PersistenceError{Op: "query", Err: err}
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, &PersistenceError{Op: "query", Err: err}
	}

	return records, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s.coll == nil {
		return ErrStoreUnavailable
	}
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
