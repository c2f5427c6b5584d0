package micheline

import (
	"bytes"
	"encoding/hex"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/number"
)

type jsonPrim struct {
	Prim   string   `json:"prim"`
	Args   []Node   `json:"args,omitempty"`
	Annots []string `json:"annots,omitempty"`
}

type jsonObject struct {
	Int    *string           `json:"int"`
	String *string           `json:"string"`
	Bytes  *string           `json:"bytes"`
	Prim   *string           `json:"prim"`
	Args   []json.RawMessage `json:"args"`
	Annots []string          `json:"annots"`
}

// MarshalJSON implements json.Marshaler.
func (n Int) MarshalJSON() ([]byte, error) {
	return []byte(`{"int":"` + n.Value.String() + `"}`), nil
}

// MarshalJSON implements json.Marshaler.
func (n String) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"string": n.Value})
}

// MarshalJSON implements json.Marshaler.
func (n Bytes) MarshalJSON() ([]byte, error) {
	return []byte(`{"bytes":"` + hex.EncodeToString(n.Value) + `"}`), nil
}

// MarshalJSON implements json.Marshaler.
func (n *PrimitiveApplication) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonPrim{Prim: n.Prim, Args: n.Args, Annots: n.Annots})
}

// MarshalJSON implements json.Marshaler.
func (n Sequence) MarshalJSON() ([]byte, error) {
	items := []Node(n)
	if items == nil {
		items = []Node{}
	}
	return json.Marshal(items)
}

// MarshalJSON encodes n in the node RPC JSON format.
func MarshalJSON(n Node) ([]byte, error) {
	if n == nil {
		return nil, errors.Malformed(errors.PhaseEncode, nil, "nil node")
	}
	return json.Marshal(n)
}

// MarshalIndentJSON is like MarshalJSON with indentation.
func MarshalIndentJSON(n Node, indent string) ([]byte, error) {
	if n == nil {
		return nil, errors.Malformed(errors.PhaseEncode, nil, "nil node")
	}
	return json.MarshalIndent(n, "", indent)
}

// UnmarshalJSON decodes a node from the node RPC JSON format. WithMaxDepth
// bounds nesting.
func UnmarshalJSON(data []byte, opts ...Option) (Node, error) {
	cfg := newCodecConfig(opts)
	return unmarshalJSON(data, nil, 0, cfg.maxDepth)
}

func unmarshalJSON(data []byte, path []string, depth, maxDepth int) (Node, error) {
	if depth > maxDepth {
		return nil, errors.DepthExceeded(errors.PhaseParse, path, maxDepth)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.Malformed(errors.PhaseParse, path, "empty JSON value")
	}

	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.ParseFailed("micheline sequence", err)
		}
		seq := make(Sequence, 0, len(raw))
		for i, item := range raw {
			n, err := unmarshalJSON(item, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			seq = append(seq, n)
		}
		return seq, nil
	case '{':
		var obj jsonObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, errors.ParseFailed("micheline object", err)
		}
		return obj.node(path, depth, maxDepth)
	default:
		return nil, errors.Malformed(errors.PhaseParse, path, "expected object or array")
	}
}

func (o *jsonObject) node(path []string, depth, maxDepth int) (Node, error) {
	shapes := 0
	for _, set := range []bool{o.Int != nil, o.String != nil, o.Bytes != nil, o.Prim != nil} {
		if set {
			shapes++
		}
	}
	if shapes != 1 {
		return nil, errors.Malformed(errors.PhaseParse, path, "object must have exactly one of int, string, bytes, prim")
	}

	switch {
	case o.Int != nil:
		v, err := number.ParseInteger(*o.Int)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindMalformed, err, "int literal")
		}
		return Int{Value: v}, nil
	case o.String != nil:
		return String{Value: *o.String}, nil
	case o.Bytes != nil:
		b, err := hex.DecodeString(*o.Bytes)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindMalformed, err, "bytes literal")
		}
		return Bytes{Value: b}, nil
	}

	prim := &PrimitiveApplication{Prim: *o.Prim}
	if len(o.Annots) > 0 {
		prim.Annots = o.Annots
	}
	if len(o.Args) > 0 {
		prim.Args = make([]Node, 0, len(o.Args))
		for i, raw := range o.Args {
			arg, err := unmarshalJSON(raw, appendPath(path, prim.Prim, "args["+strconv.Itoa(i)+"]"), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			prim.Args = append(prim.Args, arg)
		}
	}
	return prim, nil
}

func appendPath(path []string, elems ...string) []string {
	out := make([]string, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}
