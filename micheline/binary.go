package micheline

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/michelson/cursor"
	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/number"
)

// Node tags of the binary expression encoding.
const (
	TagInt              byte = 0x00
	TagString           byte = 0x01
	TagSequence         byte = 0x02
	TagPrimNoArgs       byte = 0x03
	TagPrimNoArgsAnnots byte = 0x04
	TagPrim1Arg         byte = 0x05
	TagPrim1ArgAnnots   byte = 0x06
	TagPrim2Args        byte = 0x07
	TagPrim2ArgsAnnots  byte = 0x08
	TagPrimGeneric      byte = 0x09
	TagBytes            byte = 0x0A
)

// PackPrefix marks PACK output.
const PackPrefix byte = 0x05

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 1024

const (
	lengthPrefixSize    = 4
	annotationSeparator = " "
	maxInlineArgs       = 2
)

// PrimTable maps primitive names to their one-byte binary tags.
type PrimTable interface {
	PrimTag(name string) (byte, bool)
	PrimName(tag byte) (string, bool)
}

// Option configures an Encoder, a Decoder or UnmarshalJSON.
type Option func(*codecConfig)

type codecConfig struct {
	maxDepth int
}

// WithMaxDepth bounds expression nesting. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *codecConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

func newCodecConfig(opts []Option) codecConfig {
	cfg := codecConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Encoder writes nodes in the binary expression encoding.
type Encoder struct {
	prims    PrimTable
	maxDepth int
}

// NewEncoder creates an Encoder resolving primitive names through prims.
func NewEncoder(prims PrimTable, opts ...Option) *Encoder {
	cfg := newCodecConfig(opts)
	return &Encoder{prims: prims, maxDepth: cfg.maxDepth}
}

// Encode returns the binary encoding of n.
func (e *Encoder) Encode(n Node) ([]byte, error) {
	return e.appendNode(nil, n, nil, 0)
}

// Pack returns the PACK serialization of n: the 0x05 prefix followed by Encode.
func (e *Encoder) Pack(n Node) ([]byte, error) {
	return e.appendNode([]byte{PackPrefix}, n, nil, 0)
}

func (e *Encoder) appendNode(dst []byte, n Node, path []string, depth int) ([]byte, error) {
	if depth > e.maxDepth {
		Logger().Debug("micheline encode depth limit", zap.Int("limit", e.maxDepth), zap.Strings("path", path))
		return nil, errors.DepthExceeded(errors.PhaseEncode, path, e.maxDepth)
	}

	switch v := n.(type) {
	case Int:
		dst = append(dst, TagInt)
		return append(dst, number.EncodeInteger(v.Value)...), nil
	case String:
		dst = append(dst, TagString)
		return appendLengthPrefixed(dst, []byte(v.Value)), nil
	case Bytes:
		dst = append(dst, TagBytes)
		return appendLengthPrefixed(dst, v.Value), nil
	case Sequence:
		dst = append(dst, TagSequence)
		var body []byte
		var err error
		for i, item := range v {
			body, err = e.appendNode(body, item, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
			if err != nil {
				return nil, err
			}
		}
		return appendLengthPrefixed(dst, body), nil
	case *PrimitiveApplication:
		if v == nil {
			return nil, errors.Malformed(errors.PhaseEncode, path, "nil primitive application")
		}
		return e.appendPrim(dst, v, path, depth)
	default:
		return nil, errors.Malformed(errors.PhaseEncode, path, "unknown node type")
	}
}

func (e *Encoder) appendPrim(dst []byte, p *PrimitiveApplication, path []string, depth int) ([]byte, error) {
	tag, ok := e.prims.PrimTag(p.Prim)
	if !ok {
		return nil, errors.New(errors.PhaseEncode, errors.KindUnknownTag).
			Path(path...).
			Prim(p.Prim).
			Detail("primitive has no binary tag").
			Build()
	}

	hasAnnots := len(p.Annots) > 0
	argc := len(p.Args)

	var nodeTag byte
	switch {
	case argc > maxInlineArgs:
		nodeTag = TagPrimGeneric
	case hasAnnots:
		nodeTag = TagPrimNoArgsAnnots + byte(argc)*2
	default:
		nodeTag = TagPrimNoArgs + byte(argc)*2
	}
	dst = append(dst, nodeTag, tag)

	var err error
	if nodeTag == TagPrimGeneric {
		var body []byte
		for i, arg := range p.Args {
			body, err = e.appendNode(body, arg, appendPath(path, p.Prim, "args["+strconv.Itoa(i)+"]"), depth+1)
			if err != nil {
				return nil, err
			}
		}
		dst = appendLengthPrefixed(dst, body)
		return appendLengthPrefixed(dst, []byte(strings.Join(p.Annots, annotationSeparator))), nil
	}

	for i, arg := range p.Args {
		dst, err = e.appendNode(dst, arg, appendPath(path, p.Prim, "args["+strconv.Itoa(i)+"]"), depth+1)
		if err != nil {
			return nil, err
		}
	}
	if hasAnnots {
		dst = appendLengthPrefixed(dst, []byte(strings.Join(p.Annots, annotationSeparator)))
	}
	return dst, nil
}

func appendLengthPrefixed(dst, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// Decoder reads nodes from the binary expression encoding.
type Decoder struct {
	prims    PrimTable
	maxDepth int
}

// NewDecoder creates a Decoder resolving primitive tags through prims.
func NewDecoder(prims PrimTable, opts ...Option) *Decoder {
	cfg := newCodecConfig(opts)
	return &Decoder{prims: prims, maxDepth: cfg.maxDepth}
}

// Decode decodes exactly one node from data. Trailing bytes are an error.
func (d *Decoder) Decode(data []byte) (Node, error) {
	c := cursor.New(data)
	n, err := d.DecodeConsuming(c)
	if err != nil {
		return nil, err
	}
	if !c.IsEmpty() {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Value(c.Len()).
			Detail("%d trailing bytes after expression", c.Len()).
			Build()
	}
	return n, nil
}

// Unpack decodes PACK output: a 0x05 prefix followed by one expression.
func (d *Decoder) Unpack(data []byte) (Node, error) {
	if len(data) == 0 || data[0] != PackPrefix {
		return nil, errors.Malformed(errors.PhaseDecode, nil, "missing 0x05 pack prefix")
	}
	return d.Decode(data[1:])
}

// DecodeConsuming decodes one node from the front of c and leaves the rest.
func (d *Decoder) DecodeConsuming(c *cursor.Cursor) (Node, error) {
	return d.decodeNode(c, nil, 0)
}

func (d *Decoder) decodeNode(c *cursor.Cursor, path []string, depth int) (Node, error) {
	if depth > d.maxDepth {
		Logger().Debug("micheline decode depth limit", zap.Int("limit", d.maxDepth), zap.Strings("path", path))
		return nil, errors.DepthExceeded(errors.PhaseDecode, path, d.maxDepth)
	}

	tag, ok := c.ConsumeAt(0)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, 1, 0)
	}

	switch tag {
	case TagInt:
		v, err := number.DecodeIntegerConsuming(c)
		if err != nil {
			return nil, err
		}
		return Int{Value: v}, nil
	case TagString:
		payload, err := readLengthPrefixed(c, path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(payload) {
			return nil, errors.Malformed(errors.PhaseDecode, path, "string literal is not valid UTF-8")
		}
		return String{Value: string(payload)}, nil
	case TagBytes:
		payload, err := readLengthPrefixed(c, path)
		if err != nil {
			return nil, err
		}
		return Bytes{Value: payload}, nil
	case TagSequence:
		payload, err := readLengthPrefixed(c, path)
		if err != nil {
			return nil, err
		}
		items, err := d.decodeAll(cursor.New(payload), path, depth)
		if err != nil {
			return nil, err
		}
		return Sequence(items), nil
	case TagPrimNoArgs, TagPrimNoArgsAnnots, TagPrim1Arg, TagPrim1ArgAnnots,
		TagPrim2Args, TagPrim2ArgsAnnots, TagPrimGeneric:
		return d.decodePrim(c, tag, path, depth)
	default:
		Logger().Debug("unknown micheline node tag", zap.Uint8("tag", tag))
		return nil, errors.UnknownTag(errors.PhaseDecode, "node", tag)
	}
}

func (d *Decoder) decodePrim(c *cursor.Cursor, nodeTag byte, path []string, depth int) (Node, error) {
	primTag, ok := c.ConsumeAt(0)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, 1, 0)
	}
	name, ok := d.prims.PrimName(primTag)
	if !ok {
		return nil, errors.UnknownTag(errors.PhaseDecode, "primitive", primTag)
	}

	prim := &PrimitiveApplication{Prim: name}
	argPath := appendPath(path, name)

	if nodeTag == TagPrimGeneric {
		payload, err := readLengthPrefixed(c, argPath)
		if err != nil {
			return nil, err
		}
		args, err := d.decodeAll(cursor.New(payload), argPath, depth)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			prim.Args = args
		}
		annots, err := readAnnots(c, argPath)
		if err != nil {
			return nil, err
		}
		prim.Annots = annots
		return prim, nil
	}

	argc := int(nodeTag-TagPrimNoArgs) / 2
	hasAnnots := (nodeTag-TagPrimNoArgs)%2 == 1
	for i := 0; i < argc; i++ {
		arg, err := d.decodeNode(c, appendPath(argPath, "args["+strconv.Itoa(i)+"]"), depth+1)
		if err != nil {
			return nil, err
		}
		prim.Args = append(prim.Args, arg)
	}
	if hasAnnots {
		annots, err := readAnnots(c, argPath)
		if err != nil {
			return nil, err
		}
		prim.Annots = annots
	}
	return prim, nil
}

func (d *Decoder) decodeAll(c *cursor.Cursor, path []string, depth int) ([]Node, error) {
	var items []Node
	for i := 0; !c.IsEmpty(); i++ {
		n, err := d.decodeNode(c, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

func readLengthPrefixed(c *cursor.Cursor, path []string) ([]byte, error) {
	header, ok := c.Consume(lengthPrefixSize)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, lengthPrefixSize, c.Len())
	}
	size := binary.BigEndian.Uint32(header)
	if uint64(size) > uint64(c.Len()) {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, int(size), c.Len())
	}
	payload, _ := c.Consume(int(size))
	return payload, nil
}

func readAnnots(c *cursor.Cursor, path []string) ([]string, error) {
	payload, err := readLengthPrefixed(c, path)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return strings.Split(string(payload), annotationSeparator), nil
}
