package number_test

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/michelson/cursor"
	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/number"
)

func naturalVectors() []struct {
	value   number.Natural
	encoded []byte
} {
	return []struct {
		value   number.Natural
		encoded []byte
	}{
		{number.NewNatural(0), []byte{0}},
		{number.NewNatural(1), []byte{1}},
		{number.NewNatural(10), []byte{10}},
		{number.NewNatural(42), []byte{42}},
		{number.NewNatural(64), []byte{64}},
		{number.NewNatural(127), []byte{127}},
		{number.NewNatural(128), []byte{128, 1}},
		{number.NewNatural(18756523543673), []byte{249, 152, 177, 191, 241, 161, 4}},
		{number.NewNatural(6852352674543413768), []byte{136, 212, 238, 142, 188, 206, 156, 140, 95}},
		{
			number.MustParseNatural("54576326575686358562454576456764"),
			[]byte{188, 200, 169, 161, 243, 209, 156, 162, 224, 219, 253, 249, 153, 155, 172, 1},
		},
		{
			number.MustParseNatural("41547452475632687683489977342365486797893454355756867843"),
			[]byte{
				131, 194, 247, 231, 163, 173, 225, 186, 194, 204, 202, 215, 213, 207, 147, 226,
				197, 135, 146, 224, 236, 154, 165, 200, 198, 227, 6,
			},
		},
	}
}

func TestEncodeNatural(t *testing.T) {
	for _, tt := range naturalVectors() {
		t.Run(tt.value.String(), func(t *testing.T) {
			assert.Equal(t, tt.encoded, number.EncodeNatural(tt.value))
		})
	}
}

func TestDecodeNatural(t *testing.T) {
	for _, tt := range naturalVectors() {
		t.Run(tt.value.String(), func(t *testing.T) {
			got, err := number.DecodeNatural(tt.encoded)
			require.NoError(t, err)
			assert.True(t, tt.value.Equal(got), "got %s, want %s", got, tt.value)
		})
	}
}

func TestDecodeNaturalEmpty(t *testing.T) {
	_, err := number.DecodeNatural(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidNaturalBytes)

	_, err = number.DecodeNaturalConsuming(cursor.New([]byte{}))
	assert.ErrorIs(t, err, errors.ErrInvalidNaturalBytes)
}

func TestDecodeNaturalLeavesInputUntouched(t *testing.T) {
	data := []byte{128, 1, 0xff}
	_, err := number.DecodeNatural(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{128, 1, 0xff}, data)
}

func TestDecodeNaturalConsumingChained(t *testing.T) {
	var data []byte
	data = append(data, number.EncodeNatural(number.NewNatural(300))...)
	data = append(data, number.EncodeNatural(number.NewNatural(0))...)
	data = append(data, number.EncodeNatural(number.MustParseNatural("54576326575686358562454576456764"))...)
	data = append(data, 0xde, 0xad)

	c := cursor.New(data)

	first, err := number.DecodeNaturalConsuming(c)
	require.NoError(t, err)
	assert.Equal(t, "300", first.String())

	second, err := number.DecodeNaturalConsuming(c)
	require.NoError(t, err)
	assert.True(t, second.IsZero())

	third, err := number.DecodeNaturalConsuming(c)
	require.NoError(t, err)
	assert.Equal(t, "54576326575686358562454576456764", third.String())

	assert.Equal(t, []byte{0xde, 0xad}, c.Bytes(), "trailing bytes stay in the cursor")
}

func TestDecodeNaturalTruncatedStopsAtEnd(t *testing.T) {
	// a dangling continuation bit yields the groups read so far
	got, err := number.DecodeNatural([]byte{0x81})
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())
}

func TestNaturalRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		v := new(big.Int)
		words := rng.IntN(6)
		for w := 0; w <= words; w++ {
			v.Lsh(v, 64)
			v.Or(v, new(big.Int).SetUint64(rng.Uint64()))
		}
		v.Rsh(v, uint(rng.IntN(64)))

		n, err := number.NaturalFromBig(v)
		require.NoError(t, err)

		got, err := number.DecodeNatural(number.EncodeNatural(n))
		require.NoError(t, err)
		require.True(t, n.Equal(got), "round trip %s -> %s", n, got)
	}
}

func TestIntegerVectors(t *testing.T) {
	tests := []struct {
		value   int64
		encoded []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x41}},
		{63, []byte{0x3f}},
		{-63, []byte{0x7f}},
		{64, []byte{0x80, 0x01}},
		{-64, []byte{0xc0, 0x01}},
		{1000, []byte{0xa8, 0x0f}},
		{-1000, []byte{0xe8, 0x0f}},
		{8191, []byte{0xbf, 0x7f}},
		{8192, []byte{0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		t.Run(big.NewInt(tt.value).String(), func(t *testing.T) {
			i := number.NewInteger(tt.value)
			assert.Equal(t, tt.encoded, number.EncodeInteger(i))

			got, err := number.DecodeInteger(tt.encoded)
			require.NoError(t, err)
			assert.True(t, i.Equal(got), "got %s, want %d", got, tt.value)
		})
	}
}

func TestIntegerRoundTripBig(t *testing.T) {
	values := []string{
		"54576326575686358562454576456764",
		"-54576326575686358562454576456764",
		"-41547452475632687683489977342365486797893454355756867843",
		"9223372036854775808",
		"-9223372036854775809",
	}
	for _, s := range values {
		t.Run(s, func(t *testing.T) {
			i := number.MustParseInteger(s)
			got, err := number.DecodeInteger(number.EncodeInteger(i))
			require.NoError(t, err)
			assert.Equal(t, s, got.String())
		})
	}
}

func TestDecodeIntegerEmpty(t *testing.T) {
	_, err := number.DecodeInteger(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidIntegerBytes)
}

func TestDecodeIntegerConsumingChained(t *testing.T) {
	data := append(number.EncodeInteger(number.NewInteger(-1000)), number.EncodeInteger(number.NewInteger(5))...)
	c := cursor.New(data)

	a, err := number.DecodeIntegerConsuming(c)
	require.NoError(t, err)
	b, err := number.DecodeIntegerConsuming(c)
	require.NoError(t, err)

	assert.Equal(t, "-1000", a.String())
	assert.Equal(t, "5", b.String())
	assert.True(t, c.IsEmpty())
}
