// Package store persists transactions in a MongoDB collection. Documents use
// the flat nine-flag category shape; listings always come back newest first.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spendscribe/internal/logging"
	"spendscribe/internal/models"
)

var (
	// ErrInvalidID is returned when a caller-supplied ID is not a valid
	// ObjectID hex string.
	ErrInvalidID = errors.New("invalid transaction ID")

	// ErrNotFound is returned when no transaction matches the given ID.
	ErrNotFound = errors.New("transaction not found")
)

// Filter narrows a listing. Nil or empty fields match everything; Category
// "all" is treated the same as empty.
type Filter struct {
	DateStart *time.Time
	DateEnd   *time.Time
	Category  string
}

// UpdateFields holds the partial update for one transaction. Nil fields are
// left untouched.
type UpdateFields struct {
	Item *string
	Cost *float64
	Date *time.Time
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}
	return client, nil
}

// TransactionStore wraps one MongoDB collection of transaction documents.
type TransactionStore struct {
	coll   *mongo.Collection
	logger logging.Logger
}

// NewTransactionStore creates a store over the given collection.
func NewTransactionStore(coll *mongo.Collection, logger logging.Logger) *TransactionStore {
	return &TransactionStore{coll: coll, logger: logger}
}

// List returns the transactions matching the filter, newest first.
func (s *TransactionStore) List(ctx context.Context, filter Filter) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer cur.Close(ctx)

	txs := make([]models.Transaction, 0)
	if err := cur.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}
	s.logger.WithField(logging.FieldCount, len(txs)).Debug("Listed transactions")
	return txs, nil
}

// Create inserts one transaction and fills in its generated ID.
func (s *TransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	res, err := s.coll.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		tx.ID = id
	}
	s.logger.WithFields(
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID.Hex()},
		logging.Field{Key: logging.FieldItem, Value: tx.Item},
		logging.Field{Key: logging.FieldAmount, Value: tx.Cost},
	).Info("Transaction created")
	return nil
}

// Update applies a partial update to one transaction by ID.
func (s *TransactionStore) Update(ctx context.Context, id string, fields UpdateFields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	set := bson.M{}
	if fields.Item != nil {
		set["item"] = *fields.Item
	}
	if fields.Cost != nil {
		set["cost"] = *fields.Cost
	}
	if fields.Date != nil {
		set["date"] = *fields.Date
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating transaction %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	s.logger.WithField(logging.FieldTransactionID, id).Info("Transaction updated")
	return nil
}

// Delete removes one transaction by ID.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	s.logger.WithField(logging.FieldTransactionID, id).Info("Transaction deleted")
	return nil
}

// buildFilter converts a Filter into the MongoDB query document. Date bounds
// combine into one range condition; a category filter matches its flag field.
func buildFilter(f Filter) bson.M {
	query := bson.M{}

	dateCond := bson.M{}
	if f.DateStart != nil {
		dateCond["$gte"] = *f.DateStart
	}
	if f.DateEnd != nil {
		dateCond["$lte"] = *f.DateEnd
	}
	if len(dateCond) > 0 {
		query["date"] = dateCond
	}

	if f.Category != "" && f.Category != "all" {
		query["is_"+f.Category] = true
	}
	return query
}
