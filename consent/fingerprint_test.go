package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSignals = Signals{
	UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
	Locale:         "en-US",
	ScreenWidth:    1920,
	ScreenHeight:   1080,
	TimezoneOffset: -480,
	CanvasHash:     "c4a3f1",
	Processors:     8,
	TouchCapable:   false,
}

func TestFingerprintStable(t *testing.T) {
	assert.Equal(t, testSignals.Fingerprint(), testSignals.Fingerprint())
	assert.Len(t, testSignals.Fingerprint(), 16)
}

func TestFingerprintDivergesPerSignal(t *testing.T) {
	base := testSignals.Fingerprint()

	changed := testSignals
	changed.Locale = "de-DE"
	assert.NotEqual(t, base, changed.Fingerprint())

	changed = testSignals
	changed.ScreenWidth = 1280
	assert.NotEqual(t, base, changed.Fingerprint())

	changed = testSignals
	changed.TouchCapable = true
	assert.NotEqual(t, base, changed.Fingerprint())

	changed = testSignals
	changed.TimezoneOffset = 60
	assert.NotEqual(t, base, changed.Fingerprint())
}
