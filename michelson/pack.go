package michelson

import (
	"github.com/wippyai/michelson/micheline"
)

// Pack returns the PACK serialization of m.
func (t *Transcoder) Pack(m Michelson) ([]byte, error) {
	out, err := t.pack(m)
	t.metrics.observe(directionPack, err)
	return out, err
}

func (t *Transcoder) pack(m Michelson) ([]byte, error) {
	n, err := t.encode(m, nil, 0)
	if err != nil {
		return nil, err
	}
	return micheline.NewEncoder(t.registry, micheline.WithMaxDepth(t.maxDepth)).Pack(n)
}

// Unpack decodes PACK output into a typed node.
func (t *Transcoder) Unpack(data []byte) (Michelson, error) {
	m, err := t.unpack(data)
	t.metrics.observe(directionUnpack, err)
	return m, err
}

func (t *Transcoder) unpack(data []byte) (Michelson, error) {
	n, err := micheline.NewDecoder(t.registry, micheline.WithMaxDepth(t.maxDepth)).Unpack(data)
	if err != nil {
		return nil, err
	}
	return t.decode(n, nil, 0)
}

// Marshal packs m with the default Transcoder.
func Marshal(m Michelson) ([]byte, error) {
	return Default().Pack(m)
}

// Unmarshal unpacks data with the default Transcoder.
func Unmarshal(data []byte) (Michelson, error) {
	return Default().Unpack(data)
}
