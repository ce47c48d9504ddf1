package usecase

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// KeyGenerator derives object storage keys from declared filenames.
// A key is the name with its trailing unique-suffix segments removed
// plus a fresh date-based suffix, so re-uploads of the same file do
// not address objects that existing records still reference. The
// suffix is never checked for uniqueness: two uploads that draw the
// same date+random pair overwrite each other in storage. Known
// weakness, accepted.
type KeyGenerator struct {
	now    func() time.Time
	random func() int
}

func NewKeyGenerator() KeyGenerator {
	return KeyGenerator{
		now:    time.Now,
		random: func() int { return 100000 + rand.IntN(900000) },
	}
}

// Key returns the storage key for a declared filename:
// "<stripped-name>-YYYYMMDD<6-digit random>".
func (g KeyGenerator) Key(name string) string {
	return fmt.Sprintf("%s-%s%d",
		StripUniqueSuffix(name),
		g.now().Format("20060102"),
		g.random(),
	)
}

// StripUniqueSuffix removes the final two hyphen-delimited segments
// from name. Client uploads arrive as "<display-name>-<id1>-<id2>",
// where the display name may itself contain hyphens. A name without
// the two-segment suffix passes through unchanged.
func StripUniqueSuffix(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) < 3 {
		return name
	}
	return strings.Join(parts[:len(parts)-2], "-")
}
