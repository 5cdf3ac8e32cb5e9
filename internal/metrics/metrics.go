package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "culturesync"

// Metrics TourAPI 聚合相关指标；方法对 nil 接收者安全，未注入时直接跳过
type Metrics struct {
	requests        *prometheus.CounterVec
	retries         *prometheus.CounterVec
	partitions      *prometheus.CounterVec
	unknownCodes    *prometheus.CounterVec
	fallbacks       prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New 创建并注册指标。reg 为 nil 时使用 prometheus.DefaultRegisterer
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tourapi_requests_total",
			Help:      "TourAPI requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tourapi_retries_total",
			Help:      "TourAPI request retries by endpoint.",
		}, []string{"endpoint"}),
		partitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partition_results_total",
			Help:      "Aggregation partition outcomes by content type.",
		}, []string{"content_type_id", "outcome"}),
		unknownCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_content_type_total",
			Help:      "Upstream content type codes mapped to the default category.",
		}, []string{"content_type_id"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_served_total",
			Help:      "Event lists answered from the static fallback dataset.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tourapi_request_duration_seconds",
			Help:      "Latency of successful TourAPI fetches including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.retries, m.partitions, m.unknownCodes, m.fallbacks, m.requestDuration)
	return m
}

func (m *Metrics) ObserveRequest(endpoint, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	if outcome == "ok" {
		m.requestDuration.WithLabelValues(endpoint).Observe(seconds)
	}
}

func (m *Metrics) IncRetry(endpoint string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) IncPartition(contentTypeID, outcome string) {
	if m == nil {
		return
	}
	m.partitions.WithLabelValues(contentTypeID, outcome).Inc()
}

func (m *Metrics) IncUnknownCode(contentTypeID string) {
	if m == nil {
		return
	}
	m.unknownCodes.WithLabelValues(contentTypeID).Inc()
}

func (m *Metrics) IncFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}
