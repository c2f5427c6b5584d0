package number

import (
	"math/big"

	"github.com/wippyai/michelson/errors"
)

// Natural is an immutable arbitrary-precision non-negative integer.
// The zero value is 0.
type Natural struct {
	v *big.Int
}

// NewNatural creates a Natural from a uint64.
func NewNatural(v uint64) Natural {
	return Natural{v: new(big.Int).SetUint64(v)}
}

// ParseNatural parses a base-10 string.
func ParseNatural(s string) (Natural, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Natural{}, errors.New(errors.PhaseParse, errors.KindMalformed).
			Value(s).
			Detail("invalid natural %q", s).
			Build()
	}
	return NaturalFromBig(v)
}

// MustParseNatural is like ParseNatural but panics on malformed input.
// It is intended for constants and tests.
func MustParseNatural(s string) Natural {
	n, err := ParseNatural(s)
	if err != nil {
		panic(err)
	}
	return n
}

// NaturalFromBig copies v into a Natural. Negative values are rejected.
func NaturalFromBig(v *big.Int) (Natural, error) {
	if v == nil {
		return Natural{}, nil
	}
	if v.Sign() < 0 {
		return Natural{}, errors.New(errors.PhaseValidate, errors.KindNegative).
			Value(v.String()).
			Detail("natural cannot be negative: %s", v.String()).
			Build()
	}
	return Natural{v: new(big.Int).Set(v)}, nil
}

func (n Natural) big() *big.Int {
	if n.v == nil {
		return new(big.Int)
	}
	return n.v
}

// Big returns a copy of the value.
func (n Natural) Big() *big.Int {
	return new(big.Int).Set(n.big())
}

// IsZero reports whether the value is 0.
func (n Natural) IsZero() bool {
	return n.v == nil || n.v.Sign() == 0
}

// Uint64 returns the value if it fits.
func (n Natural) Uint64() (uint64, bool) {
	v := n.big()
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// Integer widens the value to a signed Integer.
func (n Natural) Integer() Integer {
	return Integer{v: n.Big()}
}

// Equal reports whether both values are numerically equal.
func (n Natural) Equal(other Natural) bool {
	return n.big().Cmp(other.big()) == 0
}

// Cmp compares n and other and returns -1, 0 or +1.
func (n Natural) Cmp(other Natural) int {
	return n.big().Cmp(other.big())
}

func (n Natural) String() string {
	return n.big().String()
}

// MarshalText implements encoding.TextMarshaler.
func (n Natural) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Natural) UnmarshalText(text []byte) error {
	parsed, err := ParseNatural(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
