package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumDeterministic(t *testing.T) {
	a := Checksum(1700000000000, "2.0", "abc", "salt")
	b := Checksum(1700000000000, "2.0", "abc", "salt")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestChecksumChangesWithEveryField(t *testing.T) {
	base := Checksum(1700000000000, "2.0", "abc", "salt")

	assert.NotEqual(t, base, Checksum(1700000000001, "2.0", "abc", "salt"))
	assert.NotEqual(t, base, Checksum(1700000000000, "2.1", "abc", "salt"))
	assert.NotEqual(t, base, Checksum(1700000000000, "2.0", "abd", "salt"))
	assert.NotEqual(t, base, Checksum(1700000000000, "2.0", "abc", "pepper"))
}

func TestChecksumFieldBoundaries(t *testing.T) {
	// moving a character across the delimiter must not collide
	a := Checksum(1700000000000, "2.0x", "abc", "salt")
	b := Checksum(1700000000000, "2.0", "xabc", "salt")

	assert.NotEqual(t, a, b)
}

func TestChecksumEqual(t *testing.T) {
	a := Checksum(1700000000000, "2.0", "abc", "salt")

	assert.True(t, ChecksumEqual(a, a))
	assert.False(t, ChecksumEqual(a, Checksum(1700000000000, "2.0", "abc", "other")))
	assert.False(t, ChecksumEqual(a, ""))
}
