// Package generator synthesizes the deterministic demo dashboard data.
package generator

import "unicode/utf16"

const (
	hashSeed       uint32 = 0xdeadbeef
	hashMultiplier uint32 = 2654435761
	hashRange             = 4294967296.0
)

// Rand maps a string to a pseudo-random number in [0, 1). The same string
// always produces the same number. The hash runs over UTF-16 code units so
// values match those computed by browser clients.
func Rand(seed string) float64 {
	h := hashSeed
	for _, c := range utf16.Encode([]rune(seed)) {
		h = (h ^ uint32(c)) * hashMultiplier
	}
	return float64(h^(h>>16)) / hashRange
}
