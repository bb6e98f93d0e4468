package service

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// referenceAlphabet excludes lookalike characters (0/O, 1/I/L) so references
// survive being read over the phone.
const referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	referenceRandomLen = 8
	referenceTimeLen   = 4
)

// ReferenceGenerator produces booking references of the form
// PREFIX-XXXXXXXX-XXXX: a crypto-random segment followed by a time-derived
// segment. Uniqueness is probabilistic; the database unique constraint on the
// reference column is the final arbiter and callers retry on collision.
type ReferenceGenerator struct {
	prefix string
	now    func() time.Time
}

// NewReferenceGenerator creates a generator with the given brand prefix.
func NewReferenceGenerator(prefix string) *ReferenceGenerator {
	return &ReferenceGenerator{
		prefix: strings.ToUpper(prefix),
		now:    time.Now,
	}
}

// Generate produces a new booking reference.
func (g *ReferenceGenerator) Generate() (string, error) {
	random, err := randomSegment(referenceRandomLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}
	return g.prefix + "-" + random + "-" + g.timeSegment(), nil
}

// randomSegment draws n characters from the reference alphabet using
// crypto/rand.
func randomSegment(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(out), nil
}

// timeSegment encodes the current nanosecond clock into the reference
// alphabet, keeping the trailing characters so consecutive references differ.
func (g *ReferenceGenerator) timeSegment() string {
	n := g.now().UnixNano()
	if n < 0 {
		n = -n
	}
	base := int64(len(referenceAlphabet))
	out := make([]byte, referenceTimeLen)
	for i := referenceTimeLen - 1; i >= 0; i-- {
		out[i] = referenceAlphabet[n%base]
		n /= base
	}
	return string(out)
}
