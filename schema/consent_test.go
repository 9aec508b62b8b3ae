package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsentRecordState(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	record := ConsentRecord{
		IsValid:   true,
		ExpiresAt: now.Add(time.Hour),
	}
	assert.Equal(t, ConsentStateValid, record.State(now))

	// expiry is passive; the stored document does not change
	assert.Equal(t, ConsentStateExpired, record.State(now.Add(2*time.Hour)))

	// revocation wins regardless of expiry, both are terminal
	record.IsValid = false
	assert.Equal(t, ConsentStateRevoked, record.State(now))
	assert.Equal(t, ConsentStateRevoked, record.State(now.Add(2*time.Hour)))
}
