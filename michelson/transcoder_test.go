package michelson_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/michelson"
	"github.com/wippyai/michelson/number"
)

var cmpOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

func natPtr(v uint64) *number.Natural {
	n := number.NewNatural(v)
	return &n
}

func mustJSON(t *testing.T, src string) micheline.Node {
	t.Helper()
	n, err := micheline.UnmarshalJSON([]byte(src))
	require.NoError(t, err)
	return n
}

// sampleArgs builds the smallest valid argument list for p.
func sampleArgs(p *michelson.Prim) []micheline.Node {
	sample := func(f michelson.Field) micheline.Node {
		switch f.Kind {
		case michelson.ValueNatural:
			return micheline.NewInt(7)
		case michelson.ValueInteger:
			return micheline.NewInt(-7)
		case michelson.ValueString:
			return micheline.NewString("name")
		case michelson.ValueBytes:
			return micheline.NewBytes([]byte{0xca, 0xfe})
		case michelson.ValueType:
			return micheline.Prim("nat")
		case michelson.ValueInstruction, michelson.ValueSequence:
			return micheline.Seq(micheline.Prim("DROP"))
		default:
			return micheline.Prim("Unit")
		}
	}

	var args []micheline.Node
	for _, f := range p.Required {
		args = append(args, sample(f))
	}
	if p.Optional != nil {
		args = append(args, sample(*p.Optional))
	}
	for _, f := range p.Boxed {
		args = append(args, sample(f))
	}
	if p.Rest != nil {
		for i := 0; i < p.Rest.Min+1; i++ {
			args = append(args, sample(*p.Rest))
		}
	}
	return args
}

func TestEveryPrimRoundTrips(t *testing.T) {
	tr := michelson.Default()

	for _, p := range tr.Registry().Prims() {
		t.Run(p.Name, func(t *testing.T) {
			node := micheline.Prim(p.Name, sampleArgs(p)...)
			if p.Metadata {
				node = node.WithAnnots("%field", "@var")
			}

			typed, err := tr.FromMicheline(node)
			require.NoError(t, err)
			assert.Equal(t, p.GoType(), reflect.TypeOf(typed))

			back, err := tr.ToMicheline(typed)
			require.NoError(t, err)
			assert.True(t, micheline.Equal(node, back), "round trip changed %s", p.Name)

			packed, err := tr.Pack(typed)
			require.NoError(t, err)
			assert.Equal(t, byte(0x05), packed[0])
			assert.Equal(t, p.Tag, packed[2])

			unpacked, err := tr.Unpack(packed)
			require.NoError(t, err)
			assert.True(t, tr.Equal(typed, unpacked))
		})
	}
}

func TestFromMichelineTyped(t *testing.T) {
	tests := []struct {
		name string
		json string
		want michelson.Michelson
	}{
		{
			name: "push with annotation",
			json: `{"prim":"PUSH","args":[{"prim":"nat"},{"int":"1"}],"annots":["@one"]}`,
			want: michelson.Push{
				Metadata: michelson.MustMetadata("@one"),
				Type:     michelson.NatType{},
				Value:    michelson.NewNat(1),
			},
		},
		{
			name: "dip without count",
			json: `{"prim":"DIP","args":[[{"prim":"DROP"}]]}`,
			want: michelson.Dip{Body: michelson.Seq(michelson.Drop{})},
		},
		{
			name: "dip with count",
			json: `{"prim":"DIP","args":[{"int":"2"},[{"prim":"DROP"}]]}`,
			want: michelson.Dip{N: natPtr(2), Body: michelson.Seq(michelson.Drop{})},
		},
		{
			name: "drop with count",
			json: `{"prim":"DROP","args":[{"int":"3"}]}`,
			want: michelson.Drop{N: natPtr(3)},
		},
		{
			name: "if with branches",
			json: `{"prim":"IF","args":[[{"prim":"UNIT"}],[]]}`,
			want: michelson.If{Then: michelson.Seq(michelson.UnitInstr{}), Else: michelson.Seq()},
		},
		{
			name: "comb pair data",
			json: `{"prim":"Pair","args":[{"int":"1"},{"string":"a"},{"bytes":"ff"}]}`,
			want: michelson.NewPair(michelson.NewInt(1), michelson.String{Value: "a"}, michelson.Bytes{Value: []byte{0xff}}),
		},
		{
			name: "map type with field annotations",
			json: `{"prim":"map","args":[{"prim":"string","annots":["%k"]},{"prim":"nat"}],"annots":[":m"]}`,
			want: michelson.MapType{
				Metadata: michelson.MustMetadata(":m"),
				Key:      michelson.StringType{Metadata: michelson.MustMetadata("%k")},
				Value:    michelson.NatType{},
			},
		},
		{
			name: "lambda instruction",
			json: `{"prim":"LAMBDA","args":[{"prim":"int"},{"prim":"int"},[{"prim":"NEG"}]]}`,
			want: michelson.Lambda{
				Param:  michelson.IntType{},
				Return: michelson.IntType{},
				Body:   michelson.Seq(michelson.Neg{}),
			},
		},
		{
			name: "data sequence of elts",
			json: `[{"prim":"Elt","args":[{"int":"1"},{"prim":"Some","args":[{"prim":"True"}]}]}]`,
			want: michelson.Seq(michelson.Elt{Key: michelson.NewInt(1), Value: michelson.Some{Value: michelson.True{}}}),
		},
		{
			name: "script sections",
			json: `[{"prim":"parameter","args":[{"prim":"unit"}]},{"prim":"storage","args":[{"prim":"unit"}]},{"prim":"code","args":[[{"prim":"CDR"},{"prim":"NIL","args":[{"prim":"operation"}]},{"prim":"PAIR"}]]}]`,
			want: michelson.Seq(
				michelson.ParameterSection{Type: michelson.UnitType{}},
				michelson.StorageSection{Type: michelson.UnitType{}},
				michelson.CodeSection{Body: michelson.Seq(
					michelson.Cdr{},
					michelson.Nil{Elem: michelson.OperationType{}},
					michelson.PairInstr{},
				)},
			),
		},
		{
			name: "emit with tag and type",
			json: `{"prim":"EMIT","args":[{"prim":"nat"}],"annots":["%transfer"]}`,
			want: michelson.Emit{Metadata: michelson.MustMetadata("%transfer"), Type: michelson.NatType{}},
		},
		{
			name: "literal",
			json: `{"int":"-5"}`,
			want: michelson.NewInt(-5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := michelson.FromMicheline(mustJSON(t, tt.json))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmpOpts...); diff != "" {
				t.Errorf("FromMicheline mismatch (-want +got):\n%s", diff)
			}

			back, err := michelson.ToMicheline(got)
			require.NoError(t, err)
			assert.True(t, micheline.Equal(mustJSON(t, tt.json), back))
		})
	}
}

func TestFromMichelineErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind errors.Kind
	}{
		{"unknown primitive", `{"prim":"FOO"}`, errors.KindInvalidPrimitiveApplication},
		{"push missing value", `{"prim":"PUSH","args":[{"prim":"nat"}]}`, errors.KindInvalidPrimitiveApplication},
		{"pair with one value", `{"prim":"Pair","args":[{"int":"1"}]}`, errors.KindInvalidPrimitiveApplication},
		{"dig without count", `{"prim":"DIG"}`, errors.KindInvalidPrimitiveApplication},
		{"dip count without body", `{"prim":"DIP","args":[{"int":"2"}]}`, errors.KindInvalidPrimitiveApplication},
		{"dip without args", `{"prim":"DIP"}`, errors.KindInvalidPrimitiveApplication},
		{"dip negative count", `{"prim":"DIP","args":[{"int":"-1"},[]]}`, errors.KindNegative},
		{"dig negative", `{"prim":"DIG","args":[{"int":"-1"}]}`, errors.KindNegative},
		{"dig with string", `{"prim":"DIG","args":[{"string":"x"}]}`, errors.KindTypeMismatch},
		{"view name not a string", `{"prim":"VIEW","args":[{"int":"1"},{"prim":"nat"}]}`, errors.KindTypeMismatch},
		{"push type in value slot", `{"prim":"PUSH","args":[{"prim":"nat"},{"prim":"nat"}]}`, errors.KindInvalidData},
		{"push data in type slot", `{"prim":"PUSH","args":[{"prim":"Unit"},{"int":"1"}]}`, errors.KindInvalidType},
		{"if branch holds data", `{"prim":"IF","args":[[{"prim":"Unit"}],[]]}`, errors.KindInvalidInstruction},
		{"lambda body not code", `{"prim":"LAMBDA","args":[{"prim":"int"},{"prim":"int"},{"int":"1"}]}`, errors.KindInvalidInstruction},
		{"create contract without script", `{"prim":"CREATE_CONTRACT","args":[{"prim":"Unit"}]}`, errors.KindTypeMismatch},
		{"bad annotation", `{"prim":"nat","annots":["!x"]}`, errors.KindInvalidAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := michelson.FromMicheline(mustJSON(t, tt.json))
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Kind: tt.kind})
		})
	}
}

func TestFromMichelineErrorPath(t *testing.T) {
	_, err := michelson.FromMicheline(mustJSON(t, `{"prim":"PUSH","args":[{"prim":"nat"},{"prim":"nat"}]}`))
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"PUSH", "args[1]"}, e.Path)
}

func TestTrailingArgumentsIgnored(t *testing.T) {
	node := mustJSON(t, `{"prim":"Some","args":[{"int":"1"},{"int":"2"}]}`)

	got, err := michelson.FromMicheline(node)
	require.NoError(t, err)
	if diff := cmp.Diff(michelson.Some{Value: michelson.NewInt(1)}, got, cmpOpts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	back, err := michelson.ToMicheline(got)
	require.NoError(t, err)
	assert.True(t, micheline.Equal(mustJSON(t, `{"prim":"Some","args":[{"int":"1"}]}`), back))
}

func TestAnnotationsDroppedWithoutMetadata(t *testing.T) {
	got, err := michelson.FromMicheline(micheline.Prim("SWAP").WithAnnots("@x"))
	require.NoError(t, err)
	assert.Equal(t, michelson.Swap{}, got)

	back, err := michelson.ToMicheline(got)
	require.NoError(t, err)
	assert.True(t, micheline.Equal(micheline.Prim("SWAP"), back))
}

func TestDecodeAs(t *testing.T) {
	tr := michelson.Default()

	push, err := michelson.Decode[michelson.Push](tr, mustJSON(t, `{"prim":"PUSH","args":[{"prim":"int"},{"int":"-3"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "-3", push.Value.(michelson.Int).Value.String())

	_, err = michelson.Decode[michelson.Push](tr, micheline.Prim("DROP"))
	assert.ErrorIs(t, err, errors.ErrInvalidPrimitiveApplication)

	_, err = michelson.Decode[michelson.Push](tr, micheline.NewInt(1))
	assert.ErrorIs(t, err, errors.ErrInvalidPrimitiveApplication)

	ty, err := michelson.Decode[michelson.Type](tr, micheline.Prim("unit"))
	require.NoError(t, err)
	assert.Equal(t, michelson.UnitType{}, ty)

	_, err = michelson.Decode[michelson.Data](tr, micheline.Prim("nat"))
	assert.ErrorIs(t, err, errors.ErrInvalidMichelsonData)

	_, err = michelson.Decode[michelson.Instruction](tr, micheline.Seq(micheline.Prim("DROP"), micheline.Prim("Unit")))
	assert.ErrorIs(t, err, errors.ErrInvalidMichelsonInstruction)

	seq, err := michelson.Decode[michelson.Sequence](tr, micheline.Seq(micheline.NewInt(1)))
	require.NoError(t, err)
	assert.Len(t, seq, 1)

	_, err = michelson.Decode[michelson.Sequence](tr, micheline.Prim("Unit"))
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindTypeMismatch})
}

func TestNarrowing(t *testing.T) {
	tests := []struct {
		name        string
		value       michelson.Michelson
		data        bool
		instruction bool
		typ         bool
	}{
		{"literal", michelson.NewInt(1), true, false, false},
		{"data constructor", michelson.Unit{}, true, false, false},
		{"instruction", michelson.Drop{}, true, true, false},
		{"type", michelson.NatType{}, false, false, true},
		{"section", michelson.StorageSection{Type: michelson.UnitType{}}, false, false, false},
		{"empty sequence", michelson.Seq(), true, true, false},
		{"instruction sequence", michelson.Seq(michelson.Drop{}, michelson.Seq(michelson.Swap{})), true, true, false},
		{"data sequence", michelson.Seq(michelson.NewInt(1), michelson.Unit{}), true, false, false},
		{"mixed sequence", michelson.Seq(michelson.Drop{}, michelson.NatType{}), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := michelson.AsData(tt.value)
			if tt.data {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidMichelsonData)
			}

			_, err = michelson.AsInstruction(tt.value)
			if tt.instruction {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidMichelsonInstruction)
			}

			_, err = michelson.AsType(tt.value)
			if tt.typ {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidMichelsonType)
			}
		})
	}
}

func TestGlobalConstant(t *testing.T) {
	const hash = "exprtZBwZUeYYYfUs9B9Rg2ywHezVHnCCnmF9WsDQVrs582dSK63dC"
	node := micheline.Prim("constant", micheline.NewString(hash))

	for _, decode := range []func(micheline.Node) (michelson.Michelson, error){
		func(n micheline.Node) (michelson.Michelson, error) { return michelson.Default().DataFromMicheline(n) },
		func(n micheline.Node) (michelson.Michelson, error) { return michelson.Default().InstructionFromMicheline(n) },
		func(n micheline.Node) (michelson.Michelson, error) { return michelson.Default().TypeFromMicheline(n) },
	} {
		got, err := decode(node)
		require.NoError(t, err)
		assert.Equal(t, michelson.Constant{Hash: hash}, got)
	}

	typed, err := michelson.FromMicheline(mustJSON(t,
		`{"prim":"PUSH","args":[{"prim":"constant","args":[{"string":"`+hash+`"}]},{"int":"1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, michelson.Constant{Hash: hash}, typed.(michelson.Push).Type)

	packed, err := michelson.Marshal(michelson.Constant{Hash: hash})
	require.NoError(t, err)
	assert.Equal(t, byte(0x92), packed[2])
	back, err := michelson.Unmarshal(packed)
	require.NoError(t, err)
	assert.Equal(t, michelson.Constant{Hash: hash}, back)

	_, err = michelson.FromMicheline(micheline.Prim("constant", micheline.NewInt(1)))
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindTypeMismatch})
}

func TestAsSection(t *testing.T) {
	s, err := michelson.AsSection(michelson.StorageSection{Type: michelson.UnitType{}})
	require.NoError(t, err)
	assert.IsType(t, michelson.StorageSection{}, s)

	for _, v := range []michelson.Michelson{michelson.NatType{}, michelson.Unit{}, michelson.Drop{}, michelson.Seq()} {
		_, err := michelson.AsSection(v)
		assert.ErrorIs(t, err, errors.ErrInvalidMichelsonSection)
		assert.NotErrorIs(t, err, errors.ErrInvalidMichelsonType)
	}
}

func TestToMichelineErrors(t *testing.T) {
	tests := []struct {
		name  string
		value michelson.Michelson
		kind  errors.Kind
	}{
		{"nil", nil, errors.KindMalformed},
		{"missing boxed field", michelson.Push{Type: michelson.NatType{}}, errors.KindMalformed},
		{"short pair", michelson.Pair{Values: []michelson.Data{michelson.Unit{}}}, errors.KindInvalidPrimitiveApplication},
		{"nil inside sequence", michelson.Seq(michelson.Drop{}, nil), errors.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := michelson.ToMicheline(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Kind: tt.kind})
		})
	}
}

func TestToMichelinePointer(t *testing.T) {
	got, err := michelson.ToMicheline(&michelson.Some{Value: michelson.Unit{}})
	require.NoError(t, err)
	assert.True(t, micheline.Equal(micheline.Prim("Some", micheline.Prim("Unit")), got))
}

func TestToMichelineAnnotations(t *testing.T) {
	got, err := michelson.ToMicheline(michelson.Car{Metadata: michelson.MustMetadata("@left", "%a")})
	require.NoError(t, err)

	app, ok := got.(*micheline.PrimitiveApplication)
	require.True(t, ok)
	assert.Equal(t, []string{"@left", "%a"}, app.Annots)
	assert.Empty(t, app.Args)
}

func nestedSome(depth int) (michelson.Data, micheline.Node) {
	var typed michelson.Data = michelson.Unit{}
	var node micheline.Node = micheline.Prim("Unit")
	for i := 0; i < depth; i++ {
		typed = michelson.Some{Value: typed}
		node = micheline.Prim("Some", node)
	}
	return typed, node
}

func TestDepthLimit(t *testing.T) {
	tr := michelson.NewTranscoder(michelson.WithMaxDepth(4))
	assert.Equal(t, 4, tr.MaxDepth())

	typed, node := nestedSome(4)
	_, err := tr.ToMicheline(typed)
	require.NoError(t, err)
	_, err = tr.FromMicheline(node)
	require.NoError(t, err)

	typed, node = nestedSome(5)
	_, err = tr.ToMicheline(typed)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
	_, err = tr.FromMicheline(node)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)

	var seq micheline.Node = micheline.Seq()
	for i := 0; i < 10; i++ {
		seq = micheline.Seq(seq)
	}
	_, err = tr.FromMicheline(seq)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
}

func TestDefaultDepthLimit(t *testing.T) {
	tr := michelson.NewTranscoder(michelson.WithMaxDepth(0))
	assert.Equal(t, michelson.DefaultMaxDepth, tr.MaxDepth())

	_, node := nestedSome(michelson.DefaultMaxDepth + 1)
	_, err := tr.FromMicheline(node)
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
}

func TestEqual(t *testing.T) {
	a := michelson.Push{Type: michelson.NatType{}, Value: michelson.NewNat(1)}
	b := michelson.Push{Type: michelson.NatType{}, Value: michelson.NewInt(1)}
	c := michelson.Push{Type: michelson.IntType{}, Value: michelson.NewInt(1)}

	assert.True(t, michelson.Equal(a, b))
	assert.False(t, michelson.Equal(a, c))
	assert.False(t, michelson.Equal(a, nil))
}

func TestConcurrentTranscoding(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := michelson.NewTranscoder()
	src := `{"prim":"LAMBDA","args":[{"prim":"pair","args":[{"prim":"nat"},{"prim":"nat"}]},{"prim":"nat"},[{"prim":"UNPAIR"},{"prim":"ADD"}]]}`

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node, err := micheline.UnmarshalJSON([]byte(src))
			if err != nil {
				errs <- err
				return
			}
			typed, err := tr.FromMicheline(node)
			if err != nil {
				errs <- err
				return
			}
			back, err := tr.ToMicheline(typed)
			if err != nil {
				errs <- err
				return
			}
			if !micheline.Equal(node, back) {
				errs <- fmt.Errorf("goroutine %d: round trip mismatch", i)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
