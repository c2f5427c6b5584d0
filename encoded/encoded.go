package encoded

import (
	"bytes"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"

	"github.com/wippyai/michelson/errors"
)

const checksumSize = 4

// Prefix describes one kind of encoded value.
type Prefix struct {
	Name       string
	Bytes      []byte
	PayloadLen int
}

var (
	Tz1        = Prefix{Name: "tz1", Bytes: []byte{6, 161, 159}, PayloadLen: 20}
	Tz2        = Prefix{Name: "tz2", Bytes: []byte{6, 161, 161}, PayloadLen: 20}
	Tz3        = Prefix{Name: "tz3", Bytes: []byte{6, 161, 164}, PayloadLen: 20}
	KT1        = Prefix{Name: "KT1", Bytes: []byte{2, 90, 121}, PayloadLen: 20}
	Block      = Prefix{Name: "B", Bytes: []byte{1, 52}, PayloadLen: 32}
	Operation  = Prefix{Name: "o", Bytes: []byte{5, 116}, PayloadLen: 32}
	ScriptExpr = Prefix{Name: "expr", Bytes: []byte{13, 44, 64, 27}, PayloadLen: 32}
	ChainID    = Prefix{Name: "Net", Bytes: []byte{87, 82, 0}, PayloadLen: 4}
)

var prefixes = []Prefix{Tz1, Tz2, Tz3, KT1, Block, Operation, ScriptExpr, ChainID}

// Prefixes returns every known prefix.
func Prefixes() []Prefix {
	out := make([]Prefix, len(prefixes))
	copy(out, prefixes)
	return out
}

// Encode returns the Base58Check string of payload under p.
func Encode(p Prefix, payload []byte) (string, error) {
	if len(payload) != p.PayloadLen {
		return "", errors.New(errors.PhaseEncode, errors.KindInvalidEncoded).
			Value(len(payload)).
			Detail("%s payload must be %d bytes, got %d", p.Name, p.PayloadLen, len(payload)).
			Build()
	}
	raw := make([]byte, 0, len(p.Bytes)+len(payload)+checksumSize)
	raw = append(raw, p.Bytes...)
	raw = append(raw, payload...)
	raw = append(raw, checksum(raw)...)
	return base58.Encode(raw), nil
}

// Decode parses s and returns its prefix and payload.
func Decode(s string) (Prefix, []byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Prefix{}, nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidEncoded, err, "invalid base58")
	}
	if len(raw) < checksumSize {
		return Prefix{}, nil, errors.New(errors.PhaseDecode, errors.KindInvalidEncoded).
			Value(s).
			Detail("too short").
			Build()
	}

	body, sum := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	if !bytes.Equal(checksum(body), sum) {
		return Prefix{}, nil, errors.New(errors.PhaseDecode, errors.KindInvalidEncoded).
			Value(s).
			Detail("checksum mismatch").
			Build()
	}

	for _, p := range prefixes {
		if bytes.HasPrefix(body, p.Bytes) && len(body)-len(p.Bytes) == p.PayloadLen {
			payload := make([]byte, p.PayloadLen)
			copy(payload, body[len(p.Bytes):])
			return p, payload, nil
		}
	}
	return Prefix{}, nil, errors.New(errors.PhaseDecode, errors.KindInvalidEncoded).
		Value(s).
		Detail("unknown prefix").
		Build()
}

// ScriptExprHash returns the "expr" hash of PACK output, the key under which
// big_map values are stored.
func ScriptExprHash(packed []byte) string {
	digest := blake2b.Sum256(packed)
	s, _ := Encode(ScriptExpr, digest[:])
	return s
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}
