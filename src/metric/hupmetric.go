package metric

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

const namespace = "hup"

// Message kinds.
const (
	KindAction     = "action"
	KindCardCommit = "card_commit"
	KindSignature  = "signature"
)

// Verification results.
const (
	ResultOK              = "ok"
	ResultEncoding        = "encoding"
	ResultSignatureFormat = "signature_format"
	ResultChainMismatch   = "chain_mismatch"
	ResultSenderMismatch  = "sender_mismatch"
	ResultSequence        = "sequence"
	ResultOther           = "other"
)

// Recorder receives verification outcomes.
type Recorder interface {
	Message(kind string, err error)
	Batch(size int)
}

// Nop returns r, or a Recorder dropping everything if r is nil.
func Nop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

type nopRecorder struct{}

func (nopRecorder) Message(string, error) {}
func (nopRecorder) Batch(int)             {}

// Result maps a verification error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, types.ErrEncoding):
		return ResultEncoding
	case errors.Is(err, types.ErrSignatureFormat):
		return ResultSignatureFormat
	case errors.Is(err, types.ErrChainMismatch):
		return ResultChainMismatch
	case errors.Is(err, types.ErrSenderMismatch):
		return ResultSenderMismatch
	case errors.Is(err, types.ErrSequence):
		return ResultSequence
	default:
		return ResultOther
	}
}

// VerifierMetrics is the prometheus Recorder.
type VerifierMetrics struct {
	messages  *prometheus.CounterVec
	batchSize prometheus.Histogram
}

// NewVerifierMetrics creates the verifier metrics and registers them on reg.
func NewVerifierMetrics(reg prometheus.Registerer) (m *VerifierMetrics, err error) {
	m = &VerifierMetrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "messages_total",
			Help:      "Verified channel messages by kind and result.",
		}, []string{"kind", "result"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "batch_size",
			Help:      "Jobs per verification batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.messages, m.batchSize} {
		if err = reg.Register(c); err != nil {
			m = nil
			return
		}
	}
	return
}

// Message counts one verified message.
func (m *VerifierMetrics) Message(kind string, err error) {
	m.messages.WithLabelValues(kind, Result(err)).Inc()
}

// Batch observes the size of one batch.
func (m *VerifierMetrics) Batch(size int) {
	m.batchSize.Observe(float64(size))
}
