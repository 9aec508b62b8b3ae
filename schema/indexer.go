package schema

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	connURI  string
	database string
}

func NewMongoDBIndexer(connURI, database string) *MongoDBIndexer {
	return &MongoDBIndexer{
		connURI:  connURI,
		database: database,
	}
}

// IndexAll ensures every index the service relies on. It is safe to run
// repeatedly; mongo treats an existing identical index as a no-op.
func (m *MongoDBIndexer) IndexAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.connURI))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	if err := m.IndexConsentCollection(ctx, client); err != nil {
		return err
	}

	return nil
}

// IndexConsentCollection backs the two query shapes of the consent store:
// latest-valid lookup by (fingerprint, policy_version) ordered by
// recorded_at, and range deletion over expires_at during the sweep.
func (m *MongoDBIndexer) IndexConsentCollection(ctx context.Context, client *mongo.Client) error {
	c := client.Database(m.database).Collection(ConsentRecordsCollection)

	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "fingerprint", Value: 1},
				{Key: "policy_version", Value: 1},
				{Key: "recorded_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "expires_at", Value: 1},
			},
		},
	})
	if err != nil {
		log.WithField("prefix", "schema").WithError(err).Error("fail to create consent indexes")
		return err
	}

	return nil
}
