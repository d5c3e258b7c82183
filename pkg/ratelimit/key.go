package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// Backends key windows by this string; Redis keys get a prefix on top, so
// keep composite keys short and hash anything oversized.
const maxKeyLength = 64

// KeyFunc derives a rate limit key from a request. The gate composes these
// from route class plus principal identifier; empty results are skipped.
type KeyFunc func(r *http.Request) string

// Composite joins key parts with ":" into a single window key. When the
// joined key exceeds maxKeyLength it is replaced by a 32-char hex digest,
// which keeps backend keys bounded while staying stable per input.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if part := fn(r); part != "" {
				parts = append(parts, part)
			}
		}

		key := strings.Join(parts, ":")
		if len(key) > maxKeyLength {
			sum := sha256.Sum256([]byte(key))
			key = hex.EncodeToString(sum[:16])
		}
		return key
	}
}
