package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"medshop/internal/pkg/errs"
)

const (
	numberPrefix    = "ORD-"
	numberTimestamp = "060102150405"
	sequenceWidth   = 4
	sequenceSpace   = 36 * 36 * 36 * 36
	randomBytes     = 3
)

// Number is the human facing order identifier, e.g. ORD-261015093000-002Fa1b2c3.
type Number string

// ParseNumber checks the prefix and shape of an order number.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(strings.TrimPrefix(s, numberPrefix), "-")
	if !strings.HasPrefix(s, numberPrefix) || len(parts) != 2 ||
		len(parts[0]) != len(numberTimestamp) || len(parts[1]) != sequenceWidth+2*randomBytes {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is not an order number", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}

// NumberGenerator issues order numbers made of the UTC creation second, a
// process-local base36 sequence and random hex. Numbers from one process
// never repeat within a second until the sequence wraps; the random part
// separates concurrent processes. Safe for concurrent use.
type NumberGenerator struct {
	seq atomic.Uint32
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{}
}

// Next returns a new number stamped with at.
func (g *NumberGenerator) Next(at time.Time) (Number, error) {
	seq := strconv.FormatUint(uint64(g.seq.Add(1)%sequenceSpace), 36)
	seq = strings.Repeat("0", sequenceWidth-len(seq)) + strings.ToUpper(seq)

	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("order number entropy: %w", err)
	}

	return Number(numberPrefix + at.UTC().Format(numberTimestamp) + "-" + seq + hex.EncodeToString(buf)), nil
}
