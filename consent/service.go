package consent

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/veriform/consent-api/schema"
	"github.com/veriform/consent-api/store"
)

// ErrServiceUnavailable is returned when the store stays unreachable after
// the retry. A check that hits it must be treated as "prompt the user
// again", never as a silent absence of consent.
var ErrServiceUnavailable = errors.New("consent storage unavailable")

// storeRetryInterval is the pause before the single retry of a failed
// store call.
const storeRetryInterval = 200 * time.Millisecond

type VerifyResult struct {
	Accepted  bool       `json:"accepted"`
	ID        string     `json:"id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ErrorKind ErrorKind  `json:"error_kind,omitempty"`
}

type CheckResult struct {
	HasValidConsent bool       `json:"has_valid_consent"`
	ID              string     `json:"id,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

type RevokeResult struct {
	RevokedCount int64 `json:"revoked_count"`
}

// Service orchestrates the validator and the store behind the four consent
// operations. It holds no per-request state; every call is independent.
type Service struct {
	validator *Validator
	store     store.Consent
	now       func() time.Time
}

func NewService(validator *Validator, store store.Consent) *Service {
	return &Service{
		validator: validator,
		store:     store,
		now:       time.Now,
	}
}

// Verify runs the acceptance pipeline and persists a record on approval.
// A rejection is reported inside the result; an error means the store
// could not be reached.
func (s *Service) Verify(sub schema.ConsentSubmission, meta schema.ClientMeta) (*VerifyResult, error) {
	approved, rejection := s.validator.Validate(sub, s.now())
	if rejection != nil {
		log.WithFields(log.Fields{
			"prefix":         "consent",
			"error_kind":     rejection.Kind,
			"policy_version": sub.PolicyVersion,
			"fingerprint":    sub.Fingerprint,
		}).Info("consent submission rejected")
		return &VerifyResult{Accepted: false, ErrorKind: rejection.Kind}, nil
	}

	record := schema.ConsentRecord{
		SubmittedAt:   approved.SubmittedAt,
		PolicyVersion: approved.PolicyVersion,
		Fingerprint:   approved.Fingerprint,
		Checksum:      approved.Checksum,
		ClientMeta:    meta,
	}

	var id string
	var expiresAt time.Time
	err := s.retry(func() error {
		inserted, err := s.store.InsertConsent(record)
		if err != nil {
			return err
		}
		id = inserted.ID.Hex()
		expiresAt = inserted.ExpiresAt
		return nil
	})
	if err != nil {
		log.WithField("prefix", "consent").WithError(err).Error("fail to persist consent record")
		return nil, ErrServiceUnavailable
	}

	return &VerifyResult{Accepted: true, ID: id, ExpiresAt: &expiresAt}, nil
}

// Check is a pure read: it reports whether a currently valid record exists
// for the fingerprint/version pair. On storage failure it fails safe by
// returning ErrServiceUnavailable instead of "no consent".
func (s *Service) Check(fingerprint, policyVersion string) (*CheckResult, error) {
	var record *schema.ConsentRecord
	err := s.retry(func() error {
		r, err := s.store.FindLatestValidConsent(fingerprint, policyVersion)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNoValidConsent) {
			return &CheckResult{HasValidConsent: false}, nil
		}
		log.WithField("prefix", "consent").WithError(err).Error("fail to look up consent record")
		return nil, ErrServiceUnavailable
	}

	expiresAt := record.ExpiresAt
	return &CheckResult{
		HasValidConsent: true,
		ID:              record.ID.Hex(),
		ExpiresAt:       &expiresAt,
	}, nil
}

// Revoke flips every matching record to invalid and reports how many were
// touched. Revoking with nothing left to revoke is not an error.
func (s *Service) Revoke(fingerprint, policyVersion string) (*RevokeResult, error) {
	var count int64
	err := s.retry(func() error {
		n, err := s.store.InvalidateConsents(fingerprint, policyVersion)
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	if err != nil {
		log.WithField("prefix", "consent").WithError(err).Error("fail to revoke consent records")
		return nil, ErrServiceUnavailable
	}

	log.WithFields(log.Fields{
		"prefix":         "consent",
		"policy_version": policyVersion,
		"fingerprint":    fingerprint,
		"revoked":        count,
	}).Info("consent revoked")

	return &RevokeResult{RevokedCount: count}, nil
}

// Sweep deletes every terminal record (expired or revoked). It is driven by
// a scheduler, tolerates being skipped, and is safe to run concurrently
// with any other operation.
func (s *Service) Sweep() (int64, error) {
	var deleted int64
	err := s.retry(func() error {
		n, err := s.store.SweepConsents()
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		log.WithField("prefix", "consent").WithError(err).Error("fail to sweep consent records")
		return 0, ErrServiceUnavailable
	}

	return deleted, nil
}

// retry runs op and retries it once after a short pause. ErrNoValidConsent
// is an answer, not a failure, so it passes through without a retry.
func (s *Service) retry(op func() error) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(storeRetryInterval), 1)
	return backoff.Retry(func() error {
		if err := op(); err != nil {
			if errors.Is(err, store.ErrNoValidConsent) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}, policy)
}
