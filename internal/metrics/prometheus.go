package metrics

import "github.com/prometheus/client_golang/prometheus"

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var NotificationsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notifications written to the store",
	},
	[]string{"type"},
)

var NotificationsMarkedReadTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_marked_read_total",
		Help: "Total number of notifications marked read",
	},
	[]string{"source"},
)

var NotificationsSweptTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_swept_total",
		Help: "Total number of notifications removed by the expiry sweeper",
	},
	[]string{"reason"},
)

var OrderNotificationsSuppressedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "order_notifications_suppressed_total",
		Help: "Total number of order notifications skipped for non-online orders",
	},
)

var SettingsCacheRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "settings_cache_requests_total",
		Help: "Settings cache lookups by result",
	},
	[]string{"result"},
)

var OrderEventsConsumedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_events_consumed_total",
		Help: "Order status events read from the broker",
	},
	[]string{"status"},
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		HttpErrorsTotal,
		NotificationsCreatedTotal,
		NotificationsMarkedReadTotal,
		NotificationsSweptTotal,
		OrderNotificationsSuppressedTotal,
		SettingsCacheRequestsTotal,
		OrderEventsConsumedTotal,
	)
}
