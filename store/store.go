// Package store is the gateway to the persistent record collection.
//
// Writes are last-writer-wins: the deployment is single-operator and the
// gateway adds no conflict detection. Two operators editing the same record
// concurrently will silently overwrite each other.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"constituency_site/models"
)

// ErrStoreUnavailable is returned when no backing connection exists. All
// operations keep failing with it until the process is restarted with a
// working store configuration.
var ErrStoreUnavailable = errors.New("record store unavailable")

// PersistenceError wraps an individual operation that failed after a
// connection was established. Operations are not retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Filter selects records for Query. Block and Panchayat are exact matches;
// Name and Designation match as case-insensitive substrings. Zero values
// are ignored, and the zero Filter matches everything.
type Filter struct {
	Block       string `json:"block"`
	Panchayat   string `json:"panchayat"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// ToBSON builds the Mongo query document. Substring terms are quoted so
// regex metacharacters in user input match literally.
func (f Filter) ToBSON() bson.M {
	q := bson.M{}
	if f.Block != "" {
		q["block"] = f.Block
	}
	if f.Panchayat != "" {
		q["panchayat"] = f.Panchayat
	}
	if f.Name != "" {
		q["name"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Name),
			Options: "i",
		}}
	}
	if f.Designation != "" {
		q["designation"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Designation),
			Options: "i",
		}}
	}
	return q
}

// RecordStore is the persistence contract the handlers depend on.
//
// Create assigns CreatedAt and the record id. Update replaces every mutable
// field of the matching record and is a no-op for unknown ids; CreatedAt is
// never changed after creation. Delete is idempotent. Query returns an empty
// slice (never nil) with a nil error when nothing matches, and a nil slice
// with a non-nil error when the store failed, so the two outcomes are
// distinguishable.
type RecordStore interface {
	Create(ctx context.Context, rec models.Record) (string, error)
	Update(ctx context.Context, id string, rec models.Record) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, f Filter) ([]models.Record, error)
	Ping(ctx context.Context) error
}
