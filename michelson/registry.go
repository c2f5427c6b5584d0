package michelson

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/number"
)

// Family groups primitives by the union they belong to.
type Family uint8

const (
	FamilyData Family = iota
	FamilyInstruction
	FamilyType
	FamilySection
)

func (f Family) String() string {
	switch f {
	case FamilyData:
		return "data"
	case FamilyInstruction:
		return "instruction"
	case FamilyType:
		return "type"
	case FamilySection:
		return "section"
	default:
		return "unknown"
	}
}

// FieldRole is the position of a field in a primitive's argument list.
type FieldRole uint8

const (
	RoleRequired FieldRole = iota
	RoleOptional
	RoleBoxed
	RoleRest
)

func (r FieldRole) String() string {
	switch r {
	case RoleRequired:
		return "arg"
	case RoleOptional:
		return "optional"
	case RoleBoxed:
		return "boxed"
	case RoleRest:
		return "rest"
	default:
		return "unknown"
	}
}

// ValueKind is the Go shape of a field value.
type ValueKind uint8

const (
	ValueNatural ValueKind = iota
	ValueInteger
	ValueString
	ValueBytes
	ValueMichelson
	ValueData
	ValueInstruction
	ValueType
	ValueSequence
)

func (k ValueKind) String() string {
	switch k {
	case ValueNatural:
		return "nat"
	case ValueInteger:
		return "int"
	case ValueString:
		return "string"
	case ValueBytes:
		return "bytes"
	case ValueMichelson:
		return "michelson"
	case ValueData:
		return "data"
	case ValueInstruction:
		return "instruction"
	case ValueType:
		return "type"
	case ValueSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Field describes one argument slot of a primitive.
type Field struct {
	Name    string
	Role    FieldRole
	Kind    ValueKind
	Min     int // minimum count for RoleRest
	index   int
	pointer bool
}

// Prim is the static description of one typed constructor.
type Prim struct {
	Name     string
	Tag      byte
	Family   Family
	Metadata bool
	Required []Field
	Optional *Field
	Boxed    []Field
	Rest     *Field

	goType    reflect.Type
	metaIndex int
}

// GoType returns the Go struct type backing the primitive.
func (p *Prim) GoType() reflect.Type { return p.goType }

// Arity returns the minimum and maximum number of arguments. Max is -1 when
// the primitive takes a variadic tail.
func (p *Prim) Arity() (lo, hi int) {
	lo = len(p.Required) + len(p.Boxed)
	hi = lo
	if p.Optional != nil {
		hi++
	}
	if p.Rest != nil {
		lo += p.Rest.Min
		hi = -1
	}
	return lo, hi
}

// Shape renders the argument layout, e.g. "DIP [nat] instruction".
func (p *Prim) Shape() string {
	parts := []string{p.Name}
	for _, f := range p.Required {
		parts = append(parts, f.Kind.String())
	}
	if p.Optional != nil {
		parts = append(parts, "["+p.Optional.Kind.String()+"]")
	}
	for _, f := range p.Boxed {
		parts = append(parts, f.Kind.String())
	}
	if p.Rest != nil {
		parts = append(parts, fmt.Sprintf("%s{%d,}", p.Rest.Kind, p.Rest.Min))
	}
	if p.Metadata {
		parts = append(parts, "+annots")
	}
	return strings.Join(parts, " ")
}

var (
	michelsonIface   = reflect.TypeOf((*Michelson)(nil)).Elem()
	dataIface        = reflect.TypeOf((*Data)(nil)).Elem()
	instructionIface = reflect.TypeOf((*Instruction)(nil)).Elem()
	typeIface        = reflect.TypeOf((*Type)(nil)).Elem()
	sequenceType     = reflect.TypeOf(Sequence(nil))
	metadataType     = reflect.TypeOf(Metadata{})
	naturalType      = reflect.TypeOf(number.Natural{})
	integerType      = reflect.TypeOf(number.Integer{})
	stringType       = reflect.TypeOf("")
	bytesType        = reflect.TypeOf([]byte(nil))

	markerFamilies = map[reflect.Type]Family{
		reflect.TypeOf(dataPrim{}):    FamilyData,
		reflect.TypeOf(instrPrim{}):   FamilyInstruction,
		reflect.TypeOf(typePrim{}):    FamilyType,
		reflect.TypeOf(sectionPrim{}): FamilySection,
	}
)

// Registry indexes primitives by name, tag and Go type. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	prims  []*Prim
	byName map[string]*Prim
	byTag  [256]*Prim
	byType map[reflect.Type]*Prim
}

// NewRegistry compiles the given prototypes. Each prototype must be a struct
// value embedding a family marker with a "NAME,TAG" struct tag.
func NewRegistry(prototypes ...Michelson) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]*Prim, len(prototypes)),
		byType: make(map[reflect.Type]*Prim, len(prototypes)),
	}
	for _, proto := range prototypes {
		p, err := compilePrim(reflect.TypeOf(proto))
		if err != nil {
			return nil, err
		}
		if prev, ok := r.byName[p.Name]; ok {
			return nil, errors.Registration(p.goType.String(),
				fmt.Sprintf("name %s already registered by %s", p.Name, prev.goType))
		}
		if prev := r.byTag[p.Tag]; prev != nil {
			return nil, errors.Registration(p.goType.String(),
				fmt.Sprintf("tag 0x%02x already registered by %s", p.Tag, prev.goType))
		}
		r.prims = append(r.prims, p)
		r.byName[p.Name] = p
		r.byTag[p.Tag] = p
		r.byType[p.goType] = p
	}
	sort.Slice(r.prims, func(i, j int) bool { return r.prims[i].Tag < r.prims[j].Tag })
	return r, nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry of every built-in primitive. It is
// built on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		protos := dataPrototypes()
		protos = append(protos, instructionPrototypes()...)
		protos = append(protos, typePrototypes()...)
		protos = append(protos, sectionPrototypes()...)

		r, err := NewRegistry(protos...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r

		if ce := Logger().Check(zap.DebugLevel, "michelson registry built"); ce != nil {
			counts := map[Family]int{}
			for _, p := range r.prims {
				counts[p.Family]++
			}
			ce.Write(
				zap.Int("data", counts[FamilyData]),
				zap.Int("instructions", counts[FamilyInstruction]),
				zap.Int("types", counts[FamilyType]),
				zap.Int("sections", counts[FamilySection]),
			)
		}
	})
	return defaultRegistry
}

// Lookup returns the primitive registered under name.
func (r *Registry) Lookup(name string) (*Prim, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// LookupTag returns the primitive registered under tag.
func (r *Registry) LookupTag(tag byte) (*Prim, bool) {
	p := r.byTag[tag]
	return p, p != nil
}

// PrimOf returns the primitive describing m's Go type.
func (r *Registry) PrimOf(m Michelson) (*Prim, bool) {
	if m == nil {
		return nil, false
	}
	p, ok := r.byType[reflect.TypeOf(m)]
	return p, ok
}

// Prims returns every registered primitive ordered by tag.
func (r *Registry) Prims() []*Prim {
	out := make([]*Prim, len(r.prims))
	copy(out, r.prims)
	return out
}

// PrimTag implements micheline.PrimTable.
func (r *Registry) PrimTag(name string) (byte, bool) {
	p, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return p.Tag, true
}

// PrimName implements micheline.PrimTable.
func (r *Registry) PrimName(tag byte) (string, bool) {
	p := r.byTag[tag]
	if p == nil {
		return "", false
	}
	return p.Name, true
}

func compilePrim(t reflect.Type) (*Prim, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.Registration(fmt.Sprint(t), "prototype must be a struct value")
	}

	p := &Prim{goType: t, metaIndex: -1}
	stage := RoleRequired
	seenMarker := false

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		if sf.Anonymous {
			if family, ok := markerFamilies[sf.Type]; ok {
				if seenMarker {
					return nil, errors.Registration(t.String(), "more than one family marker")
				}
				name, tag, err := parsePrimTag(sf.Tag.Get("michelson"))
				if err != nil {
					return nil, errors.New(errors.PhaseRegistry, errors.KindRegistration).
						GoType(t.String()).
						Cause(err).
						Detail("invalid marker tag").
						Build()
				}
				p.Name, p.Tag, p.Family = name, tag, family
				seenMarker = true
				continue
			}
			if sf.Type == metadataType {
				p.Metadata = true
				p.metaIndex = i
				continue
			}
		}

		raw, ok := sf.Tag.Lookup("michelson")
		if !ok {
			continue
		}
		if !sf.IsExported() {
			return nil, errors.Registration(t.String(), "field "+sf.Name+" is not exported")
		}

		f, err := compileField(sf, i, raw)
		if err != nil {
			return nil, errors.New(errors.PhaseRegistry, errors.KindRegistration).
				GoType(t.String()).
				Path(sf.Name).
				Cause(err).
				Detail("invalid field").
				Build()
		}

		if f.Role < stage {
			return nil, errors.Registration(t.String(),
				fmt.Sprintf("field %s (%s) follows a %s field", f.Name, f.Role, stage))
		}
		switch f.Role {
		case RoleRequired:
			p.Required = append(p.Required, f)
		case RoleOptional:
			if p.Optional != nil {
				return nil, errors.Registration(t.String(), "more than one optional field")
			}
			fc := f
			p.Optional = &fc
		case RoleBoxed:
			p.Boxed = append(p.Boxed, f)
		case RoleRest:
			if p.Rest != nil || p.Optional != nil || len(p.Boxed) > 0 {
				return nil, errors.Registration(t.String(), "rest field must be the only trailing field")
			}
			fc := f
			p.Rest = &fc
		}
		stage = f.Role
	}

	if !seenMarker {
		return nil, errors.Registration(t.String(), "missing family marker")
	}
	return p, nil
}

func parsePrimTag(raw string) (string, byte, error) {
	name, tagStr, ok := strings.Cut(raw, ",")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("want \"NAME,TAG\", got %q", raw)
	}
	tag, err := strconv.ParseUint(tagStr, 0, 8)
	if err != nil {
		return "", 0, fmt.Errorf("tag %q: %w", tagStr, err)
	}
	return name, byte(tag), nil
}

func compileField(sf reflect.StructField, index int, raw string) (Field, error) {
	f := Field{Name: sf.Name, index: index}

	role, opts, _ := strings.Cut(raw, ",")
	switch role {
	case "arg":
		f.Role = RoleRequired
	case "optional":
		f.Role = RoleOptional
	case "boxed":
		f.Role = RoleBoxed
	case "rest":
		f.Role = RoleRest
	default:
		return f, fmt.Errorf("unknown field role %q", role)
	}

	if opts != "" {
		key, val, _ := strings.Cut(opts, "=")
		if key != "min" || f.Role != RoleRest {
			return f, fmt.Errorf("unknown option %q for %s field", opts, role)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid min %q", val)
		}
		f.Min = n
	}

	ft := sf.Type
	switch f.Role {
	case RoleOptional:
		if ft.Kind() == reflect.Pointer {
			f.pointer = true
			ft = ft.Elem()
		} else if ft.Kind() != reflect.Interface {
			return f, fmt.Errorf("optional field must be a pointer or an interface, got %s", ft)
		}
	case RoleRest:
		if ft.Kind() != reflect.Slice || ft == bytesType || ft == sequenceType {
			return f, fmt.Errorf("rest field must be a slice, got %s", ft)
		}
		ft = ft.Elem()
		if ft.Kind() != reflect.Interface {
			return f, fmt.Errorf("rest elements must be an interface, got %s", ft)
		}
	case RoleBoxed:
		if ft.Kind() != reflect.Interface && ft != sequenceType {
			return f, fmt.Errorf("boxed field must be a node, got %s", ft)
		}
	}

	kind, ok := valueKindOf(ft)
	if !ok {
		return f, fmt.Errorf("unsupported field type %s", ft)
	}
	f.Kind = kind
	return f, nil
}

func valueKindOf(t reflect.Type) (ValueKind, bool) {
	switch t {
	case naturalType:
		return ValueNatural, true
	case integerType:
		return ValueInteger, true
	case stringType:
		return ValueString, true
	case bytesType:
		return ValueBytes, true
	case michelsonIface:
		return ValueMichelson, true
	case dataIface:
		return ValueData, true
	case instructionIface:
		return ValueInstruction, true
	case typeIface:
		return ValueType, true
	case sequenceType:
		return ValueSequence, true
	}
	return 0, false
}
