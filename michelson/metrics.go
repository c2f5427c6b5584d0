package michelson

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wippyai/michelson/errors"
)

const (
	directionEncode = "encode"
	directionDecode = "decode"
	directionPack   = "pack"
	directionUnpack = "unpack"
)

type transcoderMetrics struct {
	transcodes *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

func newTranscoderMetrics(reg prometheus.Registerer) *transcoderMetrics {
	promautoFactory := promauto.With(reg)
	return &transcoderMetrics{
		transcodes: promautoFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "michelson_transcode_total",
			Help: "number of top-level transcode calls",
		}, []string{"direction"}),
		failures: promautoFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "michelson_transcode_errors_total",
			Help: "number of failed transcode calls by error kind",
		}, []string{"direction", "kind"}),
	}
}

func (m *transcoderMetrics) observe(direction string, err error) {
	if m == nil {
		return
	}
	m.transcodes.WithLabelValues(direction).Inc()
	if err == nil {
		return
	}
	kind := "unknown"
	var e *errors.Error
	if stderrors.As(err, &e) {
		kind = string(e.Kind)
	}
	m.failures.WithLabelValues(direction, kind).Inc()
}
