package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConsentRecordsCollection = "consentRecords"
)

// ConsentState is derived from a record, never stored. Expired and Revoked
// are both terminal; callers treat them the same and they are only told
// apart for audit purposes.
type ConsentState string

const (
	ConsentStateValid   ConsentState = "valid"
	ConsentStateExpired ConsentState = "expired"
	ConsentStateRevoked ConsentState = "revoked"
)

// ConsentSubmission is the payload a client sends to prove acceptance of a
// policy version. SubmittedAt is the client's clock in epoch milliseconds
// and is only used for freshness checking; it is never the record's
// canonical creation time.
type ConsentSubmission struct {
	SubmittedAt   int64  `json:"submitted_at"`
	PolicyVersion string `json:"policy_version"`
	Fingerprint   string `json:"fingerprint"`
	Checksum      string `json:"checksum"`
}

// ClientMeta is kept on a record for audit and plays no part in validation.
type ClientMeta struct {
	UserAgent string `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	SourceIP  string `json:"source_ip,omitempty" bson:"source_ip,omitempty"`
}

// ConsentRecord is the persisted proof of consent. Records are insert-only;
// the single mutation path is the revoke operation flipping IsValid.
type ConsentRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SubmittedAt   int64              `json:"submitted_at" bson:"submitted_at"`
	PolicyVersion string             `json:"policy_version" bson:"policy_version"`
	Fingerprint   string             `json:"fingerprint" bson:"fingerprint"`
	Checksum      string             `json:"checksum" bson:"checksum"`
	ClientMeta    ClientMeta         `json:"client_meta,omitempty" bson:"client_meta,omitempty"`
	RecordedAt    time.Time          `json:"recorded_at" bson:"recorded_at"`
	ExpiresAt     time.Time          `json:"expires_at" bson:"expires_at"`
	IsValid       bool               `json:"is_valid" bson:"is_valid"`
}

// State reports the lifecycle state of the record at the given time.
func (r ConsentRecord) State(now time.Time) ConsentState {
	if !r.IsValid {
		return ConsentStateRevoked
	}
	if now.After(r.ExpiresAt) {
		return ConsentStateExpired
	}
	return ConsentStateValid
}
