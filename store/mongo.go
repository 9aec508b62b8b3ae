package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoStore is the full persistence surface the service consumes.
type MongoStore interface {
	Pinger
	Consent
}

type Pinger interface {
	Ping() error
}

type mongoDB struct {
	client   *mongo.Client
	database string

	// consentValidity is how long a freshly inserted record stays
	// acceptable; expires_at is computed from it at insert time.
	consentValidity time.Duration

	// nowFunc stands in for time.Now so tests can move the clock.
	nowFunc func() time.Time
}

// NewMongoStore returns a MongoStore backed by the given client. The
// validity period is fixed at construction; it applies to inserts only and
// is independent of the validator's freshness window.
func NewMongoStore(client *mongo.Client, database string, consentValidity time.Duration) MongoStore {
	return &mongoDB{
		client:          client,
		database:        database,
		consentValidity: consentValidity,
		nowFunc:         time.Now,
	}
}

func (m *mongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return m.client.Ping(ctx, nil)
}
