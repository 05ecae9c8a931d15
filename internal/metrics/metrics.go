package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusPanic       = "panic"
	StatusUnsupported = "unsupported"
	StatusDuplicate   = "duplicate"
	StatusIgnored     = "ignored"
)

type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dispatcher
	EventsReceived  *prometheus.CounterVec
	EventsHandled   *prometheus.CounterVec
	HandlerDuration *prometheus.HistogramVec
	QueueDepth      prometheus.Gauge
	BusyWorkers     prometheus.Gauge

	// Bot API
	OutboundCalls    *prometheus.CounterVec
	OutboundDuration *prometheus.HistogramVec

	ServiceUptime prometheus.Gauge
	startedAt     time.Time
}

// NewMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry so constructors can run more than once.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentbot_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		EventsReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentbot_events_received_total",
				Help: "Inbound events admitted to the queue",
			},
			[]string{"kind"},
		),
		EventsHandled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentbot_events_handled_total",
				Help: "Inbound events processed by workers",
			},
			[]string{"kind", "status"},
		),
		HandlerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentbot_handler_duration_seconds",
				Help:    "Time spent handling one inbound event",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentbot_queue_depth",
				Help: "Events waiting in the ingestion queue",
			},
		),
		BusyWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentbot_busy_workers",
				Help: "Workers currently handling an event",
			},
		),
		OutboundCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymentbot_bot_api_calls_total",
				Help: "Bot API calls by method and outcome",
			},
			[]string{"method", "status"},
		),
		OutboundDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymentbot_bot_api_call_duration_seconds",
				Help:    "Bot API call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		ServiceUptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "paymentbot_uptime_seconds",
				Help: "Seconds since the process started",
			},
		),
		startedAt: time.Now(),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordEventReceived(kind string, depth int) {
	m.EventsReceived.WithLabelValues(kind).Inc()
	m.QueueDepth.Set(float64(depth))
}

func (m *Metrics) RecordEventHandled(kind, status string, duration time.Duration) {
	m.EventsHandled.WithLabelValues(kind, status).Inc()
	m.HandlerDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) RecordOutboundCall(method string, err error, duration time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.OutboundCalls.WithLabelValues(method, status).Inc()
	m.OutboundDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) UpdateUptime() {
	m.ServiceUptime.Set(time.Since(m.startedAt).Seconds())
}
