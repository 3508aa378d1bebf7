package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "forecast"
)

var (
	LensDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "lens", "duration_seconds"),
		Help:    "Duration of a single lens run, including its data fetch, in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"lens", "result"})
	CombinedRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "combined", "runs_total"),
		Help: "Combined model runs by outcome",
	}, []string{"result"})
	ReportWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "report", "writes_total"),
		Help: "Report writes by sink and outcome",
	}, []string{"sink", "result"})
	PollFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "pollster", "fetches_total"),
		Help: "Poll aggregator fetches by source and outcome",
	}, []string{"source", "result"})
	WorkerCalcDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last worker calculation in seconds",
	})
)

// Result labels an outcome for the vectors above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
