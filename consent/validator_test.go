package consent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriform/consent-api/schema"
)

const (
	testSalt          = "test-salt"
	testActiveVersion = "2.0"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return NewValidator(ValidatorConfig{
		Salt:                testSalt,
		ActivePolicyVersion: testActiveVersion,
		FreshnessWindow:     20 * time.Second,
	})
}

// goodSubmission builds a submission that passes every stage at testNow.
func goodSubmission() schema.ConsentSubmission {
	submittedAt := testNow.UnixMilli()
	return schema.ConsentSubmission{
		SubmittedAt:   submittedAt,
		PolicyVersion: testActiveVersion,
		Fingerprint:   "abc",
		Checksum:      Checksum(submittedAt, testActiveVersion, "abc", testSalt),
	}
}

func TestValidateAccepts(t *testing.T) {
	v := newTestValidator()

	approved, rejection := v.Validate(goodSubmission(), testNow)
	require.Nil(t, rejection)
	require.NotNil(t, approved)
	assert.Equal(t, goodSubmission(), *approved)
}

func TestValidateStructural(t *testing.T) {
	v := newTestValidator()

	for name, mutate := range map[string]func(*schema.ConsentSubmission){
		"zero timestamp":     func(s *schema.ConsentSubmission) { s.SubmittedAt = 0 },
		"negative timestamp": func(s *schema.ConsentSubmission) { s.SubmittedAt = -1 },
		"empty version":      func(s *schema.ConsentSubmission) { s.PolicyVersion = "" },
		"empty fingerprint":  func(s *schema.ConsentSubmission) { s.Fingerprint = "" },
		"empty checksum":     func(s *schema.ConsentSubmission) { s.Checksum = "" },
	} {
		sub := goodSubmission()
		mutate(&sub)

		_, rejection := v.Validate(sub, testNow)
		require.NotNil(t, rejection, name)
		assert.Equal(t, ErrorStructureInvalid, rejection.Kind, name)
	}
}

func TestValidateFreshness(t *testing.T) {
	v := newTestValidator()

	// stale and future-dated submissions fail even with a correct checksum
	for name, offset := range map[string]time.Duration{
		"past":   -21 * time.Second,
		"future": 21 * time.Second,
		"replay": -48 * time.Hour,
	} {
		submittedAt := testNow.Add(offset).UnixMilli()
		sub := schema.ConsentSubmission{
			SubmittedAt:   submittedAt,
			PolicyVersion: testActiveVersion,
			Fingerprint:   "abc",
			Checksum:      Checksum(submittedAt, testActiveVersion, "abc", testSalt),
		}

		_, rejection := v.Validate(sub, testNow)
		require.NotNil(t, rejection, name)
		assert.Equal(t, ErrorTimestampOutOfWindow, rejection.Kind, name)
	}
}

func TestValidateFreshnessBoundary(t *testing.T) {
	v := newTestValidator()

	// exactly on the window edge is still fresh
	submittedAt := testNow.Add(-20 * time.Second).UnixMilli()
	sub := schema.ConsentSubmission{
		SubmittedAt:   submittedAt,
		PolicyVersion: testActiveVersion,
		Fingerprint:   "abc",
		Checksum:      Checksum(submittedAt, testActiveVersion, "abc", testSalt),
	}

	_, rejection := v.Validate(sub, testNow)
	assert.Nil(t, rejection)
}

func TestValidateChecksum(t *testing.T) {
	v := newTestValidator()

	// any field edited without recomputing the tag is caught
	for name, mutate := range map[string]func(*schema.ConsentSubmission){
		"timestamp edited":   func(s *schema.ConsentSubmission) { s.SubmittedAt += 1 },
		"version edited":     func(s *schema.ConsentSubmission) { s.PolicyVersion = "2.0 " },
		"fingerprint edited": func(s *schema.ConsentSubmission) { s.Fingerprint = "abd" },
		"checksum garbled":   func(s *schema.ConsentSubmission) { s.Checksum = "deadbeef" },
	} {
		sub := goodSubmission()
		mutate(&sub)

		_, rejection := v.Validate(sub, testNow)
		require.NotNil(t, rejection, name)
		assert.Equal(t, ErrorChecksumMismatch, rejection.Kind, name)
	}
}

func TestValidateVersion(t *testing.T) {
	v := newTestValidator()

	// a stale version with an internally consistent checksum fails the
	// semantic stage, not the integrity one
	submittedAt := testNow.UnixMilli()
	sub := schema.ConsentSubmission{
		SubmittedAt:   submittedAt,
		PolicyVersion: "1.0",
		Fingerprint:   "abc",
		Checksum:      Checksum(submittedAt, "1.0", "abc", testSalt),
	}

	_, rejection := v.Validate(sub, testNow)
	require.NotNil(t, rejection)
	assert.Equal(t, ErrorVersionMismatch, rejection.Kind)
}

func TestValidateStageOrder(t *testing.T) {
	v := newTestValidator()

	// a submission failing several stages reports only the earliest one
	sub := schema.ConsentSubmission{
		SubmittedAt:   testNow.Add(-time.Hour).UnixMilli(),
		PolicyVersion: "1.0",
		Fingerprint:   "abc",
		Checksum:      "bogus",
	}

	_, rejection := v.Validate(sub, testNow)
	require.NotNil(t, rejection)
	assert.Equal(t, ErrorTimestampOutOfWindow, rejection.Kind)

	sub.SubmittedAt = testNow.UnixMilli()
	_, rejection = v.Validate(sub, testNow)
	require.NotNil(t, rejection)
	assert.Equal(t, ErrorChecksumMismatch, rejection.Kind)
}
