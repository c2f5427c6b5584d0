package micheline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/michelson/errors"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/number"
)

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		node micheline.Node
		want string
	}{
		{"int", micheline.NewInt(-42), `{"int":"-42"}`},
		{"big int", micheline.Int{Value: number.MustParseInteger("54576326575686358562454576456764")}, `{"int":"54576326575686358562454576456764"}`},
		{"string", micheline.NewString(`say "hi"`), `{"string":"say \"hi\""}`},
		{"bytes", micheline.NewBytes([]byte{0x0a, 0xff}), `{"bytes":"0aff"}`},
		{"prim no args", micheline.Prim("UNIT"), `{"prim":"UNIT"}`},
		{"prim annots", micheline.Prim("nat").WithAnnots("%amount"), `{"prim":"nat","annots":["%amount"]}`},
		{
			"prim args",
			micheline.Prim("PUSH", micheline.Prim("nat"), micheline.NewInt(1)),
			`{"prim":"PUSH","args":[{"prim":"nat"},{"int":"1"}]}`,
		},
		{"empty sequence", micheline.Seq(), `[]`},
		{"nil sequence", micheline.Sequence(nil), `[]`},
		{"sequence", micheline.Seq(micheline.Prim("DROP"), micheline.NewString("x")), `[{"prim":"DROP"},{"string":"x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := micheline.MarshalJSON(tt.node)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	input := `[
		{"prim":"parameter","args":[{"prim":"nat","annots":["%n"]}]},
		{"prim":"code","args":[[
			{"prim":"CAR"},
			{"prim":"PUSH","args":[{"prim":"int"},{"int":"-7"}]},
			{"prim":"PUSH","args":[{"prim":"bytes"},{"bytes":"CAFE"}]},
			{"prim":"PUSH","args":[{"prim":"string"},{"string":"ok"}]}
		]]}
	]`

	got, err := micheline.UnmarshalJSON([]byte(input))
	require.NoError(t, err)

	want := micheline.Seq(
		micheline.Prim("parameter", micheline.Prim("nat").WithAnnots("%n")),
		micheline.Prim("code", micheline.Seq(
			micheline.Prim("CAR"),
			micheline.Prim("PUSH", micheline.Prim("int"), micheline.NewInt(-7)),
			micheline.Prim("PUSH", micheline.Prim("bytes"), micheline.NewBytes([]byte{0xca, 0xfe})),
			micheline.Prim("PUSH", micheline.Prim("string"), micheline.NewString("ok")),
		)),
	)
	assert.True(t, micheline.Equal(want, got), "got %#v", got)
}

func TestJSONRoundTrip(t *testing.T) {
	node := micheline.Seq(
		micheline.Prim("Pair", micheline.NewInt(1), micheline.Prim("Some", micheline.NewBytes([]byte{1, 2}))).WithAnnots("@p"),
		micheline.Seq(),
		micheline.NewString("tz1"),
	)

	data, err := micheline.MarshalJSON(node)
	require.NoError(t, err)
	got, err := micheline.UnmarshalJSON(data)
	require.NoError(t, err)
	assert.True(t, micheline.Equal(node, got))

	indented, err := micheline.MarshalIndentJSON(node, "  ")
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n")
}

func TestUnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"scalar", `42`},
		{"no shape", `{"args":[]}`},
		{"two shapes", `{"int":"1","string":"x"}`},
		{"bad int", `{"int":"one"}`},
		{"bad hex", `{"bytes":"zz"}`},
		{"bad nested", `{"prim":"Pair","args":[{"int":"1"},true]}`},
		{"broken json", `[{"prim":"UNIT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := micheline.UnmarshalJSON([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMalformed)
		})
	}
}

func TestUnmarshalJSONDepthLimit(t *testing.T) {
	depth := micheline.DefaultMaxDepth + 5
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	_, err := micheline.UnmarshalJSON([]byte(input))
	assert.ErrorIs(t, err, errors.ErrDepthExceeded)
}

func TestUnmarshalJSONMaxDepthOption(t *testing.T) {
	nested := func(n int) []byte {
		return []byte(strings.Repeat("[", n) + strings.Repeat("]", n))
	}

	_, err := micheline.UnmarshalJSON(nested(5), micheline.WithMaxDepth(4))
	require.NoError(t, err)

	_, err = micheline.UnmarshalJSON(nested(6), micheline.WithMaxDepth(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindDepthExceeded})

	_, err = micheline.UnmarshalJSON(nested(6), micheline.WithMaxDepth(0))
	require.NoError(t, err)
}

func TestMarshalJSONNil(t *testing.T) {
	_, err := micheline.MarshalJSON(nil)
	assert.Error(t, err)
}
