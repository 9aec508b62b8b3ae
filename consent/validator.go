package consent

import (
	"fmt"
	"time"

	"github.com/veriform/consent-api/schema"
)

// ErrorKind tags the first validation stage a submission failed. Stages run
// in a fixed order (structural, freshness, integrity, semantic) so the
// reported kind is deterministic.
type ErrorKind string

const (
	ErrorStructureInvalid     ErrorKind = "STRUCTURE_INVALID"
	ErrorTimestampOutOfWindow ErrorKind = "TIMESTAMP_OUT_OF_WINDOW"
	ErrorChecksumMismatch     ErrorKind = "CHECKSUM_MISMATCH"
	ErrorVersionMismatch      ErrorKind = "VERSION_MISMATCH"
)

// Rejection reports why a submission was refused. It satisfies error so the
// service can pass it through its storage-error plumbing unchanged.
type Rejection struct {
	Kind ErrorKind
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("consent submission rejected: %s", r.Kind)
}

// ValidatorConfig carries the values the pipeline checks against. They are
// handed in explicitly so tests and callers control them; there is no
// process-wide active version.
type ValidatorConfig struct {
	// Salt is the shared checksum salt compiled into the client bundle.
	Salt string

	// ActivePolicyVersion is the only version a new submission may cite.
	ActivePolicyVersion string

	// FreshnessWindow bounds |now - submittedAt|. Independent of the record
	// validity period; the two must not be conflated.
	FreshnessWindow time.Duration
}

type Validator struct {
	cfg ValidatorConfig
}

func NewValidator(cfg ValidatorConfig) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs the acceptance pipeline over a submission, short-circuiting
// on the first failing stage. On success the returned submission is the
// normalized form ready for persistence.
func (v *Validator) Validate(sub schema.ConsentSubmission, now time.Time) (*schema.ConsentSubmission, *Rejection) {
	// structural: all four fields present and non-empty
	if sub.SubmittedAt <= 0 || sub.PolicyVersion == "" || sub.Fingerprint == "" || sub.Checksum == "" {
		return nil, &Rejection{Kind: ErrorStructureInvalid}
	}

	// freshness: reject replays from the past and clock-skewed future stamps
	skew := now.Sub(time.UnixMilli(sub.SubmittedAt))
	if skew < 0 {
		skew = -skew
	}
	if skew > v.cfg.FreshnessWindow {
		return nil, &Rejection{Kind: ErrorTimestampOutOfWindow}
	}

	// integrity: recompute the tag from the submitted fields and our salt
	want := Checksum(sub.SubmittedAt, sub.PolicyVersion, sub.Fingerprint, v.cfg.Salt)
	if !ChecksumEqual(want, sub.Checksum) {
		return nil, &Rejection{Kind: ErrorChecksumMismatch}
	}

	// semantic: only the currently active policy version is acceptable
	if sub.PolicyVersion != v.cfg.ActivePolicyVersion {
		return nil, &Rejection{Kind: ErrorVersionMismatch}
	}

	return &sub, nil
}
