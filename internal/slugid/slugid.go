package slugid

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen      = 6
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// New derives the public identifier for a job or installer profile:
// slugified title/name, the city stripped down to alphanumerics, the
// lower-cased state and a random suffix so that two postings with the
// same title in the same city do not collide.
func New(title, city, state string) string {
	parts := []string{
		slug.Make(title),
		nonAlnum.ReplaceAllString(strings.ToLower(city), ""),
		strings.ToLower(strings.TrimSpace(state)),
		Suffix(suffixLen),
	}
	return strings.Join(parts, "-")
}

// Suffix returns n random lowercase alphanumeric characters.
func Suffix(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// unavailable; fall back to a fixed character rather than
			// returning a short slug
			sb.WriteByte('0')
			continue
		}
		sb.WriteByte(suffixAlphabet[idx.Int64()])
	}
	return sb.String()
}
