package michelson

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/number"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = micheline.DefaultMaxDepth

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithMaxDepth bounds nesting in both directions. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(t *Transcoder) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transcoder) {
		t.logger = l
	}
}

// WithMetrics registers transcode counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(t *Transcoder) {
		t.metrics = newTranscoderMetrics(reg)
	}
}

// WithRegistry replaces the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(t *Transcoder) {
		t.registry = r
	}
}

// Transcoder converts between typed nodes and Micheline trees. It holds no
// mutable state and is safe for concurrent use.
type Transcoder struct {
	registry *Registry
	maxDepth int
	logger   *zap.Logger
	metrics  *transcoderMetrics
}

// NewTranscoder creates a Transcoder over the default registry.
func NewTranscoder(opts ...Option) *Transcoder {
	t := &Transcoder{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(t)
	}
	if t.registry == nil {
		t.registry = DefaultRegistry()
	}
	if t.logger == nil {
		t.logger = Logger()
	}
	return t
}

var defaultTranscoder = sync.OnceValue(func() *Transcoder {
	return NewTranscoder()
})

// Default returns a shared Transcoder with default options.
func Default() *Transcoder {
	return defaultTranscoder()
}

// Registry returns the registry the Transcoder resolves primitives through.
func (t *Transcoder) Registry() *Registry { return t.registry }

// MaxDepth returns the configured nesting limit.
func (t *Transcoder) MaxDepth() int { return t.maxDepth }

// ToMicheline converts a typed node to its Micheline tree.
func (t *Transcoder) ToMicheline(m Michelson) (micheline.Node, error) {
	n, err := t.encode(m, nil, 0)
	t.metrics.observe(directionEncode, err)
	return n, err
}

// FromMicheline converts a Micheline tree to a typed node.
func (t *Transcoder) FromMicheline(n micheline.Node) (Michelson, error) {
	m, err := t.decode(n, nil, 0)
	t.metrics.observe(directionDecode, err)
	return m, err
}

// DataFromMicheline converts n and narrows the result to Data.
func (t *Transcoder) DataFromMicheline(n micheline.Node) (Data, error) {
	m, err := t.FromMicheline(n)
	if err != nil {
		return nil, err
	}
	return AsData(m)
}

// InstructionFromMicheline converts n and narrows the result to Instruction.
func (t *Transcoder) InstructionFromMicheline(n micheline.Node) (Instruction, error) {
	m, err := t.FromMicheline(n)
	if err != nil {
		return nil, err
	}
	return AsInstruction(m)
}

// TypeFromMicheline converts n and narrows the result to Type.
func (t *Transcoder) TypeFromMicheline(n micheline.Node) (Type, error) {
	m, err := t.FromMicheline(n)
	if err != nil {
		return nil, err
	}
	return AsType(m)
}

// Equal reports whether a and b map to the same Micheline tree.
func (t *Transcoder) Equal(a, b Michelson) bool {
	na, err := t.encode(a, nil, 0)
	if err != nil {
		return false
	}
	nb, err := t.encode(b, nil, 0)
	if err != nil {
		return false
	}
	return micheline.Equal(na, nb)
}

// Decode converts n into T. When T is a registered struct, n must be an
// application of that primitive; otherwise n is dispatched by name and the
// result narrowed to T.
func Decode[T Michelson](t *Transcoder, n micheline.Node) (T, error) {
	var zero T
	goType := reflect.TypeOf((*T)(nil)).Elem()

	var (
		m   Michelson
		err error
	)
	if p, ok := t.registry.byType[goType]; ok {
		m, err = t.decodePrim(p, n, nil, 0)
	} else {
		m, err = t.decode(n, nil, 0)
	}
	t.metrics.observe(directionDecode, err)
	if err != nil {
		return zero, err
	}

	switch goType {
	case dataIface:
		_, err = AsData(m)
	case instructionIface:
		_, err = AsInstruction(m)
	case typeIface:
		_, err = AsType(m)
	}
	if err != nil {
		return zero, err
	}

	v, ok := m.(T)
	if !ok {
		return zero, errors.TypeMismatch(errors.PhaseValidate, nil, typeName(m), goType.String())
	}
	return v, nil
}

// ToMicheline converts m with the default Transcoder.
func ToMicheline(m Michelson) (micheline.Node, error) {
	return Default().ToMicheline(m)
}

// FromMicheline converts n with the default Transcoder.
func FromMicheline(n micheline.Node) (Michelson, error) {
	return Default().FromMicheline(n)
}

func (t *Transcoder) encode(m Michelson, path []string, depth int) (micheline.Node, error) {
	if depth > t.maxDepth {
		t.logger.Debug("michelson encode depth limit", zap.Int("limit", t.maxDepth), zap.Strings("path", path))
		return nil, errors.DepthExceeded(errors.PhaseEncode, path, t.maxDepth)
	}

	switch v := m.(type) {
	case nil:
		return nil, errors.Malformed(errors.PhaseEncode, path, "nil node")
	case Int:
		return micheline.Int{Value: v.Value}, nil
	case String:
		return micheline.String{Value: v.Value}, nil
	case Bytes:
		return micheline.Bytes{Value: v.Value}, nil
	case Sequence:
		items := make(micheline.Sequence, 0, len(v))
		for i, item := range v {
			n, err := t.encode(item, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, n)
		}
		return items, nil
	}

	rv := reflect.ValueOf(m)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.Malformed(errors.PhaseEncode, path, "nil node")
		}
		rv = rv.Elem()
	}
	p, ok := t.registry.byType[rv.Type()]
	if !ok {
		return nil, errors.New(errors.PhaseEncode, errors.KindRegistration).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("type is not registered").
			Build()
	}
	return t.encodePrim(p, rv, path, depth)
}

func (t *Transcoder) encodePrim(p *Prim, rv reflect.Value, path []string, depth int) (micheline.Node, error) {
	argPath := appendPath(path, p.Name)
	var args []micheline.Node

	push := func(f *Field, fv reflect.Value) error {
		n, err := t.encodeValue(f, fv, appendPath(argPath, argLabel(len(args))), depth)
		if err != nil {
			return err
		}
		args = append(args, n)
		return nil
	}

	for i := range p.Required {
		if err := push(&p.Required[i], rv.Field(p.Required[i].index)); err != nil {
			return nil, err
		}
	}
	if f := p.Optional; f != nil {
		fv := rv.Field(f.index)
		if !fv.IsNil() {
			if f.pointer {
				fv = fv.Elem()
			}
			if err := push(f, fv); err != nil {
				return nil, err
			}
		}
	}
	for i := range p.Boxed {
		if err := push(&p.Boxed[i], rv.Field(p.Boxed[i].index)); err != nil {
			return nil, err
		}
	}
	if f := p.Rest; f != nil {
		fv := rv.Field(f.index)
		if fv.Len() < f.Min {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidPrimitiveApplication).
				Path(argPath...).
				GoType(p.goType.String()).
				Prim(p.Name).
				Detail("%s needs at least %d values, has %d", f.Name, f.Min, fv.Len()).
				Build()
		}
		for j := 0; j < fv.Len(); j++ {
			if err := push(f, fv.Index(j)); err != nil {
				return nil, err
			}
		}
	}

	out := &micheline.PrimitiveApplication{Prim: p.Name, Args: args}
	if p.Metadata {
		out.Annots = rv.Field(p.metaIndex).Interface().(Metadata).strings()
	}
	return out, nil
}

func (t *Transcoder) encodeValue(f *Field, fv reflect.Value, path []string, depth int) (micheline.Node, error) {
	switch f.Kind {
	case ValueNatural:
		return micheline.Int{Value: fv.Interface().(number.Natural).Integer()}, nil
	case ValueInteger:
		return micheline.Int{Value: fv.Interface().(number.Integer)}, nil
	case ValueString:
		return micheline.String{Value: fv.String()}, nil
	case ValueBytes:
		return micheline.Bytes{Value: fv.Bytes()}, nil
	}

	if fv.Kind() == reflect.Interface && fv.IsNil() {
		return nil, errors.Malformed(errors.PhaseEncode, path, "missing "+f.Name)
	}
	return t.encode(fv.Interface().(Michelson), path, depth+1)
}

func (t *Transcoder) decode(n micheline.Node, path []string, depth int) (Michelson, error) {
	if depth > t.maxDepth {
		t.logger.Debug("michelson decode depth limit", zap.Int("limit", t.maxDepth), zap.Strings("path", path))
		return nil, errors.DepthExceeded(errors.PhaseDecode, path, t.maxDepth)
	}

	switch v := n.(type) {
	case micheline.Int:
		return Int{Value: v.Value}, nil
	case micheline.String:
		return String{Value: v.Value}, nil
	case micheline.Bytes:
		return Bytes{Value: v.Value}, nil
	case micheline.Sequence:
		items := make(Sequence, 0, len(v))
		for i, item := range v {
			m, err := t.decode(item, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, m)
		}
		return items, nil
	case *micheline.PrimitiveApplication:
		if v == nil {
			break
		}
		p, ok := t.registry.byName[v.Prim]
		if !ok {
			t.logger.Debug("unknown michelson primitive", zap.String("prim", v.Prim), zap.Strings("path", path))
			return nil, errors.InvalidPrimitiveApplication(path, v.Prim, "unknown primitive")
		}
		return t.decodePrim(p, v, path, depth)
	}
	return nil, errors.Malformed(errors.PhaseDecode, path, "unsupported node "+nodeKind(n))
}

// decodePrim fills p's struct from app. Required fields take arguments from the
// front. The optional field takes the next argument when more arguments remain
// than boxed fields follow, or when that argument has the optional's scalar
// shape. Then each boxed field takes one. Extra arguments are ignored.
func (t *Transcoder) decodePrim(p *Prim, n micheline.Node, path []string, depth int) (Michelson, error) {
	app, ok := n.(*micheline.PrimitiveApplication)
	if !ok || app == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidPrimitiveApplication).
			Path(path...).
			Prim(p.Name).
			Detail("expected primitive application, got %s", nodeKind(n)).
			Build()
	}
	if app.Prim != p.Name {
		return nil, errors.InvalidPrimitiveApplication(path, app.Prim, "expected "+p.Name)
	}

	argPath := appendPath(path, p.Name)
	rv := reflect.New(p.goType).Elem()

	if p.Metadata {
		meta, err := NewMetadata(app.Annots...)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidAnnotation).
				Path(argPath...).
				Prim(p.Name).
				Cause(err).
				Detail("invalid annotation").
				Build()
		}
		rv.Field(p.metaIndex).Set(reflect.ValueOf(meta))
	}

	args := app.Args
	next := 0
	take := func(f *Field) (reflect.Value, error) {
		if next >= len(args) {
			return reflect.Value{}, t.arityError(p, argPath, len(args))
		}
		v, err := t.decodeValue(f, args[next], appendPath(argPath, argLabel(next)), depth)
		if err != nil {
			return reflect.Value{}, err
		}
		next++
		return v, nil
	}

	for i := range p.Required {
		f := &p.Required[i]
		v, err := take(f)
		if err != nil {
			return nil, err
		}
		rv.Field(f.index).Set(v)
	}
	if f := p.Optional; f != nil && next < len(args) &&
		(len(args)-next > len(p.Boxed) || scalarFits(f, args[next])) {
		v, err := take(f)
		if err != nil {
			return nil, err
		}
		if f.pointer {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr
		}
		rv.Field(f.index).Set(v)
	}
	for i := range p.Boxed {
		f := &p.Boxed[i]
		v, err := take(f)
		if err != nil {
			return nil, err
		}
		rv.Field(f.index).Set(v)
	}
	if f := p.Rest; f != nil {
		if len(args)-next < f.Min {
			return nil, t.arityError(p, argPath, len(args))
		}
		fv := rv.Field(f.index)
		values := reflect.MakeSlice(fv.Type(), 0, len(args)-next)
		for next < len(args) {
			v, err := take(f)
			if err != nil {
				return nil, err
			}
			values = reflect.Append(values, v)
		}
		fv.Set(values)
	}

	if next < len(args) {
		t.logger.Debug("ignoring trailing arguments",
			zap.String("prim", p.Name),
			zap.Int("used", next),
			zap.Int("given", len(args)))
	}
	return rv.Interface().(Michelson), nil
}

func (t *Transcoder) decodeValue(f *Field, n micheline.Node, path []string, depth int) (reflect.Value, error) {
	switch f.Kind {
	case ValueNatural:
		iv, ok := n.(micheline.Int)
		if !ok {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, path, nodeKind(n), "int")
		}
		nat, err := iv.Value.Natural()
		if err != nil {
			return reflect.Value{}, errors.New(errors.PhaseDecode, errors.KindNegative).
				Path(path...).
				Value(iv.Value.String()).
				Cause(err).
				Detail("expected a natural number").
				Build()
		}
		return reflect.ValueOf(nat), nil
	case ValueInteger:
		iv, ok := n.(micheline.Int)
		if !ok {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, path, nodeKind(n), "int")
		}
		return reflect.ValueOf(iv.Value), nil
	case ValueString:
		sv, ok := n.(micheline.String)
		if !ok {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, path, nodeKind(n), "string")
		}
		return reflect.ValueOf(sv.Value), nil
	case ValueBytes:
		bv, ok := n.(micheline.Bytes)
		if !ok {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, path, nodeKind(n), "bytes")
		}
		return reflect.ValueOf(bv.Value), nil
	}

	m, err := t.decode(n, path, depth+1)
	if err != nil {
		return reflect.Value{}, err
	}

	var narrowed Michelson
	switch f.Kind {
	case ValueData:
		narrowed, err = AsData(m)
	case ValueInstruction:
		narrowed, err = AsInstruction(m)
	case ValueType:
		narrowed, err = AsType(m)
	case ValueSequence:
		seq, ok := m.(Sequence)
		if !ok {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, path, typeName(m), "sequence")
		}
		narrowed = seq
	default:
		narrowed = m
	}
	if err != nil {
		return reflect.Value{}, withPath(err, path)
	}
	return reflect.ValueOf(narrowed), nil
}

// scalarFits reports whether n has the literal shape a scalar field expects.
// Node-valued fields never match by shape.
func scalarFits(f *Field, n micheline.Node) bool {
	switch f.Kind {
	case ValueNatural, ValueInteger:
		_, ok := n.(micheline.Int)
		return ok
	case ValueString:
		_, ok := n.(micheline.String)
		return ok
	case ValueBytes:
		_, ok := n.(micheline.Bytes)
		return ok
	}
	return false
}

func (t *Transcoder) arityError(p *Prim, path []string, given int) error {
	lo, hi := p.Arity()
	want := strconv.Itoa(lo)
	switch {
	case hi < 0:
		want = "at least " + want
	case hi != lo:
		want += " or " + strconv.Itoa(hi)
	}
	return errors.New(errors.PhaseDecode, errors.KindInvalidPrimitiveApplication).
		Path(path...).
		GoType(p.goType.String()).
		Prim(p.Name).
		Value(given).
		Detail("expected %s arguments, got %d", want, given).
		Build()
}

func withPath(err error, path []string) error {
	e, ok := err.(*errors.Error)
	if !ok || len(e.Path) > 0 {
		return err
	}
	clone := *e
	clone.Path = path
	return &clone
}

func nodeKind(n micheline.Node) string {
	switch v := n.(type) {
	case micheline.Int:
		return "int"
	case micheline.String:
		return "string"
	case micheline.Bytes:
		return "bytes"
	case micheline.Sequence:
		return "sequence"
	case *micheline.PrimitiveApplication:
		if v == nil {
			return "nil"
		}
		return "prim " + v.Prim
	default:
		return "nil"
	}
}

func argLabel(i int) string {
	return "args[" + strconv.Itoa(i) + "]"
}

func appendPath(path []string, elems ...string) []string {
	out := make([]string, len(path), len(path)+len(elems))
	copy(out, path)
	return append(out, elems...)
}
