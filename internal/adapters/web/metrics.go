package web

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restock_http_requests_total",
		Help: "HTTP requests processed, by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "restock_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	emailsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restock_emails_generated_total",
		Help: "Supplier order emails generated, by outcome.",
	}, []string{"outcome"})
)

func observeRequest(method string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func observeDispatch(generated, failed int) {
	emailsGenerated.WithLabelValues("success").Add(float64(generated))
	emailsGenerated.WithLabelValues("failure").Add(float64(failed))
}
