package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a rational number used for spider phases, expressed as a
// multiple of pi. Phases are kept normalized into the half-open interval
// [0, 2), i.e. modulo a full turn. Every value has a unique representation
// (reduced, with the zero phase always the zero value), so fractions and
// the structs embedding them compare correctly with ==.
type Fraction struct {
	num int64
	den int64
}

// NewFraction returns num/den normalized. A zero denominator panics: it is
// a programming error, not an input condition.
func NewFraction(num, den int64) Fraction {
	if den == 0 {
		panic("domain: fraction with zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	// Reduce modulo 2 (a phase of 2*pi is a no-op).
	num %= 2 * den
	if num < 0 {
		num += 2 * den
	}
	if num == 0 {
		return Fraction{}
	}
	g := gcd(num, den)
	return Fraction{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// Num returns the numerator of the normalized fraction.
func (f Fraction) Num() int64 { return f.num }

// Den returns the denominator of the normalized fraction.
func (f Fraction) Den() int64 {
	if f.den == 0 {
		return 1
	}
	return f.den
}

// Add returns f+g normalized modulo 2.
func (f Fraction) Add(g Fraction) Fraction {
	return NewFraction(f.num*g.Den()+g.num*f.Den(), f.Den()*g.Den())
}

// IsZero reports whether the phase is zero. The zero value of Fraction is
// the zero phase.
func (f Fraction) IsZero() bool { return f.num == 0 }

// Equal reports whether two phases are equal.
func (f Fraction) Equal(g Fraction) bool {
	return f.num == g.num && f.Den() == g.Den()
}

// String renders the fraction as "num" or "num/den".
func (f Fraction) String() string {
	if f.Den() == 1 {
		return strconv.FormatInt(f.num, 10)
	}
	return fmt.Sprintf("%d/%d", f.num, f.den)
}

// ParseFraction parses the String form.
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Fraction{}, nil
	}
	numStr, denStr, found := strings.Cut(s, "/")
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid fraction %q: %w", s, err)
	}
	den := int64(1)
	if found {
		den, err = strconv.ParseInt(denStr, 10, 64)
		if err != nil || den == 0 {
			return Fraction{}, fmt.Errorf("invalid fraction %q", s)
		}
	}
	return NewFraction(num, den), nil
}

// MarshalJSON encodes the fraction as its string form.
func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes the string form.
func (f *Fraction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFraction(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
