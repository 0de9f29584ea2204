// Package fingerprint derives cache keys from resume text. The digest is a
// lookup key only and is never used to verify content integrity.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
)

// Of returns the lowercase hex MD5 digest of text.
func Of(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Combined fingerprints two texts joined by a single space. Swapping the
// arguments yields a different id.
func Combined(first, second string) string {
	return Of(first + " " + second)
}
