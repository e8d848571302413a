package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/api/metrics"
)

const collectionSlots = "slots"

const opTimeout = 5 * time.Second

// slotDoc is the storage document: the slot key as _id, the raw JSON payload
// as bytes.
type slotDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KVStore implements the persistence gateway contract on MongoDB. Like the
// Redis backend, it never surfaces I/O errors to callers.
type KVStore struct {
	col *mongo.Collection
	log zerolog.Logger
}

// NewKVStore creates the slot store on the given database.
func NewKVStore(db *mongo.Database, log zerolog.Logger) *KVStore {
	return &KVStore{col: db.Collection(collectionSlots), log: log}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc slotDoc
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			metrics.StorageErrorsTotal.WithLabelValues("get").Inc()
			s.log.Warn().Err(err).Str("key", key).Msg("mongo get failed, treating slot as absent")
		}
		return nil, false
	}
	return doc.Value, true
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := slotDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("set").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("mongo set failed, write dropped")
	}
}

func (s *KVStore) Remove(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("remove").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("mongo delete failed")
	}
}
