package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionSessions = "sessions"

// SessionStorage implements ports.SessionStorage with one document per key.
// Expiry is enforced on read and by a TTL index on expires_at.
type SessionStorage struct {
	col *mongo.Collection
	now func() time.Time
}

type sessionDoc struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewSessionStorage returns a storage backed by the sessions collection.
func NewSessionStorage(db *mongo.Database) *SessionStorage {
	return &SessionStorage{col: db.Collection(collectionSessions), now: time.Now}
}

// Get returns the value stored under key.
func (s *SessionStorage) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("mongo find session key: %w", err)
	}
	// The TTL monitor only runs once a minute.
	if doc.ExpiresAt != nil && !s.now().Before(*doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.Value, true, nil
}

// Set upserts value under key.
func (s *SessionStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sessionDoc{Key: key, Value: value}
	if ttl > 0 {
		exp := s.now().Add(ttl).UTC()
		doc.ExpiresAt = &exp
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set session key: %w", err)
	}
	return nil
}

// Delete removes all keys in one DeleteMany.
func (s *SessionStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}}); err != nil {
		return fmt.Errorf("mongo delete session keys: %w", err)
	}
	return nil
}

// EnsureIndexes creates the TTL index that lets MongoDB expire sessions.
func (s *SessionStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
