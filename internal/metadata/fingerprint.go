package metadata

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintPrefix tags the hash algorithm used for provenance hashes
const FingerprintPrefix = "sha256:"

// Fingerprint computes the content hash of the exact chunk text, rendered
// as an algorithm-prefixed hex string. Downstream consumers use it for
// provenance and change detection; the pipeline itself never compares it.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return FingerprintPrefix + hex.EncodeToString(sum[:])
}
