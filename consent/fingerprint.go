package consent

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Signals is the fixed, ordered list of environment signals a client reads
// to derive its device fingerprint. The order and the "|" delimiter are part
// of the contract: both sides must produce the same string for the same
// device.
type Signals struct {
	UserAgent      string
	Locale         string
	ScreenWidth    int
	ScreenHeight   int
	TimezoneOffset int // minutes from UTC, as reported by the client
	CanvasHash     string
	Processors     int
	TouchCapable   bool
}

// Fingerprint derives the heuristic device identifier. Same device and
// browser build produce the same value with high probability; distinct
// devices may still collide and the service accepts that. It is not a
// credential and nothing in the protocol assumes it is forgery-proof.
func (s Signals) Fingerprint() string {
	parts := []string{
		s.UserAgent,
		s.Locale,
		fmt.Sprintf("%dx%d", s.ScreenWidth, s.ScreenHeight),
		fmt.Sprintf("%d", s.TimezoneOffset),
		s.CanvasHash,
		fmt.Sprintf("%d", s.Processors),
		fmt.Sprintf("%t", s.TouchCapable),
	}

	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%016x", h.Sum64())
}
