package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nepalipay/settlement-service/internal/domain/port/core"
)

const namespace = "nepalipay"

// PrometheusRecorder implements core.MetricsRecorder on a dedicated registry
type PrometheusRecorder struct {
	registry *prometheus.Registry

	intentsTotal       *prometheus.CounterVec
	settlementsTotal   *prometheus.CounterVec
	settlementDuration *prometheus.HistogramVec
	transfersTotal     *prometheus.CounterVec
	transferDuration   *prometheus.HistogramVec
	webhooksTotal      *prometheus.CounterVec
	stuckSettlements   prometheus.Gauge
	hotWalletBalance   prometheus.Gauge
	dbConnections      *prometheus.GaugeVec
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the settlement metrics on a new registry
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,

		intentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_intents_total",
				Help:      "Total number of payment intent creation attempts",
			},
			[]string{"outcome"},
		),
		settlementsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settlements_total",
				Help:      "Total number of settlement attempts",
			},
			[]string{"outcome"},
		),
		settlementDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "settlement_duration_seconds",
				Help:      "Settlement processing duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"outcome"},
		),
		transfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_transfers_total",
				Help:      "Total number of on-chain token transfers",
			},
			[]string{"outcome"},
		),
		transferDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "token_transfer_duration_seconds",
				Help:      "Time from submission to confirmation of a token transfer",
				Buckets:   []float64{1, 3, 5, 10, 20, 30, 60, 120},
			},
			[]string{"outcome"},
		),
		webhooksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_total",
				Help:      "Total number of payment webhooks by event type",
			},
			[]string{"event_type", "outcome"},
		),
		stuckSettlements: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stuck_settlements",
				Help:      "Purchases found in processing past the stuck threshold",
			},
		),
		hotWalletBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "hot_wallet_native_balance",
				Help:      "Native balance of the custodial hot wallet",
			},
		),
		dbConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections",
				Help:      "Database connections by state",
			},
			[]string{"state"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) PaymentIntentCreated(outcome string) {
	r.intentsTotal.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) SettlementFinished(outcome string, duration time.Duration) {
	r.settlementsTotal.WithLabelValues(outcome).Inc()
	r.settlementDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) TransferFinished(outcome string, duration time.Duration) {
	r.transfersTotal.WithLabelValues(outcome).Inc()
	r.transferDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) WebhookReceived(eventType, outcome string) {
	r.webhooksTotal.WithLabelValues(eventType, outcome).Inc()
}

func (r *PrometheusRecorder) StuckSettlements(count int) {
	r.stuckSettlements.Set(float64(count))
}

func (r *PrometheusRecorder) HotWalletBalance(balance float64) {
	r.hotWalletBalance.Set(balance)
}

func (r *PrometheusRecorder) DBPoolStats(open, inUse, idle int) {
	r.dbConnections.WithLabelValues("open").Set(float64(open))
	r.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	r.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (r *PrometheusRecorder) HTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

var _ core.MetricsRecorder = (*PrometheusRecorder)(nil)
