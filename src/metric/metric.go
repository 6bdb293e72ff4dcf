package metric

import (
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/collectors/version"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// StartMetricCollector creates a registry with the build, Go runtime and verifier metrics.
func StartMetricCollector() (registry *prometheus.Registry, vm *VerifierMetrics, err error) {
	registry = prometheus.NewRegistry()
	if err = registry.Register(version.NewCollector(namespace)); err != nil {
		log.WithError(err).Error("couldn't register version collector")
		return
	}
	if err = registry.Register(collectors.NewGoCollector()); err != nil {
		log.WithError(err).Error("couldn't register go collector")
		return
	}
	if vm, err = NewVerifierMetrics(registry); err != nil {
		log.WithError(err).Error("couldn't register verifier metrics")
		return
	}
	return
}

// Dump writes every gathered metric family to w in the text exposition format, sorted by name.
// Families of the verifier are also logged at debug level.
func Dump(registry prometheus.Gatherer, w io.Writer) (err error) {
	mfs, err := registry.Gather()
	if err != nil {
		return
	}
	sort.Slice(mfs, func(i, j int) bool { return mfs[i].GetName() < mfs[j].GetName() })
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return
		}
		if strings.HasPrefix(mf.GetName(), namespace+"_verifier_") {
			log.WithFields(log.Fields{
				"name":    mf.GetName(),
				"type":    mf.GetType().String(),
				"samples": sampleCount(mf),
			}).Debug("verifier metric")
		}
	}
	return
}

func sampleCount(mf *dto.MetricFamily) (n uint64) {
	for _, m := range mf.GetMetric() {
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			n += uint64(m.GetCounter().GetValue())
		case dto.MetricType_HISTOGRAM:
			n += m.GetHistogram().GetSampleCount()
		}
	}
	return
}
