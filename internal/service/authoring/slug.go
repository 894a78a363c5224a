package authoring

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const suffixLength = 5

// GenerateSlug builds a URL identifier from the title plus a short random
// suffix, e.g. "advanced-go-patterns-k3x9q". The suffix keeps two courses
// with the same title from colliding without leaking a numeric ID.
func GenerateSlug(title string) string {
	return Slugify(title) + "-" + randomSuffix()
}

// Slugify lowercases the title and collapses every run outside ASCII [a-z0-9]
// into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "course"
	}
	return slug
}

func randomSuffix() string {
	buf := make([]byte, suffixLength)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken.
			buf[i] = suffixAlphabet[0]
			continue
		}
		buf[i] = suffixAlphabet[n.Int64()]
	}
	return string(buf)
}
