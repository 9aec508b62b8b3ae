package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veriform/consent-api/schema"
)

var (
	ErrNoValidConsent = fmt.Errorf("no valid consent record")
)

type Consent interface {
	InsertConsent(record schema.ConsentRecord) (*schema.ConsentRecord, error)
	FindLatestValidConsent(fingerprint, policyVersion string) (*schema.ConsentRecord, error)
	InvalidateConsents(fingerprint, policyVersion string) (int64, error)
	SweepConsents() (int64, error)
}

// InsertConsent persists a validated submission as a new record. The id,
// recorded_at and expires_at are assigned here: recorded_at is the server
// clock and expires_at derives from it, never from the client-claimed
// submitted_at.
func (m *mongoDB) InsertConsent(record schema.ConsentRecord) (*schema.ConsentRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := m.nowFunc().UTC()
	record.ID = primitive.NewObjectID()
	record.RecordedAt = now
	record.ExpiresAt = now.Add(m.consentValidity)
	record.IsValid = true

	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)
	if _, err := c.InsertOne(ctx, &record); err != nil {
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"fingerprint": record.Fingerprint,
		}).WithError(err).Error("insert consent record")
		return nil, err
	}

	return &record, nil
}

// FindLatestValidConsent returns the most recent record for the pair that
// is both unrevoked and unexpired. A device may legitimately resubmit, so
// ties break on the newest recorded_at.
func (m *mongoDB) FindLatestValidConsent(fingerprint, policyVersion string) (*schema.ConsentRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)

	query := bson.M{
		"fingerprint":    fingerprint,
		"policy_version": policyVersion,
		"is_valid":       true,
		"expires_at":     bson.M{"$gt": m.nowFunc().UTC()},
	}
	opts := options.FindOne().SetSort(bson.M{"recorded_at": -1})

	var record schema.ConsentRecord
	if err := c.FindOne(ctx, query, opts).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoValidConsent
		}
		return nil, err
	}

	return &record, nil
}

// InvalidateConsents flips is_valid on every record for the pair, not just
// the latest. Calling it again with nothing left to flip returns 0.
func (m *mongoDB) InvalidateConsents(fingerprint, policyVersion string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)

	query := bson.M{
		"fingerprint":    fingerprint,
		"policy_version": policyVersion,
		"is_valid":       true,
	}
	update := bson.M{"$set": bson.M{"is_valid": false}}

	result, err := c.UpdateMany(ctx, query, update)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"fingerprint": fingerprint,
		}).WithError(err).Error("invalidate consent records")
		return 0, err
	}

	return result.ModifiedCount, nil
}

// SweepConsents physically deletes terminal records: expired ones and
// revoked ones. It only ever touches rows no lookup can return, so it is
// safe to run concurrently with inserts and queries.
func (m *mongoDB) SweepConsents() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ConsentRecordsCollection)

	query := bson.M{
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$lte": m.nowFunc().UTC()}},
			bson.M{"is_valid": false},
		},
	}

	result, err := c.DeleteMany(ctx, query)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).WithError(err).Error("sweep consent records")
		return 0, err
	}

	return result.DeletedCount, nil
}
