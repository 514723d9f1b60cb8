package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key from the digest of its parts:
// "<prefix>:<sha256 hex>". Figure keys hash the document hash alone;
// artifact keys also hash the effective render options, so any change
// in format, dimensions, DPI, or axis sharing yields a distinct key.
// Parts are JSON-encoded into the hasher one by one, which keeps
// ("ab", "c") distinct from ("a", "bc").
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, part := range parts {
		// Encoding into a hash never fails for the key types used here.
		_ = enc.Encode(part)
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the full sha256 hex digest of data. Figure documents are
// content-addressed with it: the same document bytes always map to the
// same cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
