// Package daily derives the shared "board of the day" seed so every player
// gets the same ship layout on a given date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic placement seed for a date using
// HMAC(salt, YYYY-MM-DD). Different salts give unrelated layouts.
// The full 64 bits are kept because the value seeds a generator rather than
// indexing a list.
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a PCG seed
	return binary.BigEndian.Uint64(sum[:8])
}
