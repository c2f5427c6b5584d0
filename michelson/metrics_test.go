package michelson_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/michelson"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m.GetLabel(), labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, lp := range pairs {
		if want[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr := michelson.NewTranscoder(michelson.WithMetrics(reg))

	_, err := tr.ToMicheline(michelson.Unit{})
	require.NoError(t, err)
	_, err = tr.FromMicheline(micheline.Prim("Unit"))
	require.NoError(t, err)
	_, err = tr.FromMicheline(micheline.Prim("FOO"))
	require.Error(t, err)
	_, err = tr.Pack(michelson.Unit{})
	require.NoError(t, err)
	_, err = tr.Unpack([]byte{0x00})
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "michelson_transcode_total", map[string]string{"direction": "encode"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "michelson_transcode_total", map[string]string{"direction": "decode"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "michelson_transcode_total", map[string]string{"direction": "pack"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "michelson_transcode_total", map[string]string{"direction": "unpack"}))

	assert.Equal(t, 1.0, counterValue(t, reg, "michelson_transcode_errors_total",
		map[string]string{"direction": "decode", "kind": "invalid_primitive_application"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "michelson_transcode_errors_total",
		map[string]string{"direction": "unpack", "kind": "malformed"}))
}

func TestNoMetricsByDefault(t *testing.T) {
	tr := michelson.NewTranscoder()
	_, err := tr.FromMicheline(micheline.Prim("FOO"))
	assert.Error(t, err)
}
