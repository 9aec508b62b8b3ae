package consent

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Checksum computes the integrity tag a client attaches to a submission:
// lowercase hex sha256 over "<submittedAt>|<policyVersion>|<fingerprint><salt>".
//
// The salt ships inside the client bundle, so anyone who inspects the bundle
// can recompute a valid tag. This is a tamper-evidence mechanism against
// naive edits of locally stored records, not a tamper-proof one; do not
// treat it as a secret-backed signature.
func Checksum(submittedAt int64, policyVersion, fingerprint, salt string) string {
	h := sha256.New()
	h.Write([]byte(fmt.Sprintf("%d|%s|%s%s", submittedAt, policyVersion, fingerprint, salt)))
	return hex.EncodeToString(h.Sum(nil))
}

// ChecksumEqual compares two tags in constant time. The salt's limited
// secrecy makes timing a soft concern, but the compare is cheap either way.
func ChecksumEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
