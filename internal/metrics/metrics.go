package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ClientsDeleted      *prometheus.CounterVec
	CascadedRecords     *prometheus.CounterVec
	DeletionsBlocked    prometheus.Counter
	OverdueDigestsSent  prometheus.Counter
}

// New registers the service collectors on reg. Tests pass a fresh
// prometheus.NewRegistry(); the server passes prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ClientsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_clients_deleted_total",
			Help: "Total number of deleted clients by deletion mode",
		}, []string{"mode"}),
		CascadedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_cascaded_records_deleted_total",
			Help: "Total number of loans and deposits removed by forced client deletion",
		}, []string{"kind"}),
		DeletionsBlocked: f.NewCounter(prometheus.CounterOpts{
			Name: "bank_client_deletions_blocked_total",
			Help: "Total number of client deletions rejected because of attached records",
		}),
		OverdueDigestsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "bank_overdue_digests_sent_total",
			Help: "Total number of overdue loan digests emailed",
		}),
	}
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordClientDeletion counts a committed deletion and what it cascaded.
func (m *Metrics) RecordClientDeletion(force bool, loans, deposits int) {
	if m == nil {
		return
	}
	mode := "plain"
	if force {
		mode = "forced"
	}
	m.ClientsDeleted.WithLabelValues(mode).Inc()
	m.CascadedRecords.WithLabelValues("loan").Add(float64(loans))
	m.CascadedRecords.WithLabelValues("deposit").Add(float64(deposits))
}

func (m *Metrics) IncrementDeletionsBlocked() {
	if m == nil {
		return
	}
	m.DeletionsBlocked.Inc()
}

func (m *Metrics) IncrementOverdueDigests() {
	if m == nil {
		return
	}
	m.OverdueDigestsSent.Inc()
}
