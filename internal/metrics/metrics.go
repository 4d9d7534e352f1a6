// Package metrics exposes Prometheus collectors for the crowdfunding core and
// its HTTP adapter.
package metrics

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crowdfund/internal/core/domain"
)

// Metrics bundles the collectors registered on one registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	transferred prometheus.Counter
	campaigns   prometheus.Counter
	httpLatency *prometheus.HistogramVec
}

// New registers the crowdfund collectors plus the Go and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdfund",
			Name:      "operations_total",
			Help:      "Campaign operations by name and result code.",
		}, []string{"operation", "result"}),
		transferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdfund",
			Name:      "funds_transferred_total",
			Help:      "Sum of values paid out by finalized requests.",
		}),
		campaigns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdfund",
			Name:      "campaigns_deployed_total",
			Help:      "Campaigns created by the factory since start.",
		}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crowdfund",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.transferred,
		m.campaigns,
		m.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation counts one operation outcome. Domain errors are labelled
// by code, anything else as "error".
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, resultLabel(err)).Inc()
}

// CampaignDeployed counts a factory deployment.
func (m *Metrics) CampaignDeployed() {
	if m == nil {
		return
	}
	m.campaigns.Inc()
}

// FundsTransferred adds a finalized payout. Values beyond float64 precision
// are approximated.
func (m *Metrics) FundsTransferred(value *big.Int) {
	if m == nil || value == nil {
		return
	}
	f, _ := new(big.Float).SetInt(value).Float64()
	m.transferred.Add(f)
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpLatency.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		return string(derr.Code)
	}
	return "error"
}
