package number

import (
	"math/big"

	"github.com/wippyai/michelson/errors"
)

// Integer is an immutable arbitrary-precision signed integer.
// The zero value is 0.
type Integer struct {
	v *big.Int
}

// NewInteger creates an Integer from an int64.
func NewInteger(v int64) Integer {
	return Integer{v: big.NewInt(v)}
}

// ParseInteger parses a base-10 string with an optional sign.
func ParseInteger(s string) (Integer, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{}, errors.New(errors.PhaseParse, errors.KindMalformed).
			Value(s).
			Detail("invalid integer %q", s).
			Build()
	}
	return Integer{v: v}, nil
}

// MustParseInteger is like ParseInteger but panics on malformed input.
func MustParseInteger(s string) Integer {
	i, err := ParseInteger(s)
	if err != nil {
		panic(err)
	}
	return i
}

// IntegerFromBig copies v into an Integer.
func IntegerFromBig(v *big.Int) Integer {
	if v == nil {
		return Integer{}
	}
	return Integer{v: new(big.Int).Set(v)}
}

func (i Integer) big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Big returns a copy of the value.
func (i Integer) Big() *big.Int {
	return new(big.Int).Set(i.big())
}

// Sign returns -1, 0 or +1.
func (i Integer) Sign() int {
	return i.big().Sign()
}

// Int64 returns the value if it fits.
func (i Integer) Int64() (int64, bool) {
	v := i.big()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// Natural narrows the value to a Natural. Negative values are rejected.
func (i Integer) Natural() (Natural, error) {
	return NaturalFromBig(i.big())
}

// Equal reports whether both values are numerically equal.
func (i Integer) Equal(other Integer) bool {
	return i.big().Cmp(other.big()) == 0
}

func (i Integer) String() string {
	return i.big().String()
}

// MarshalText implements encoding.TextMarshaler.
func (i Integer) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Integer) UnmarshalText(text []byte) error {
	parsed, err := ParseInteger(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
