package jsonrpc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/tonrpc/internal/custompromauto"
)

var (
	requestsTotal = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "requests_total",
		Help:      "Number of served json-rpc requests by method and error code, 0 meaning success",
	}, []string{"method", "code"})

	requestDuration = custompromauto.Auto().NewHistogramVec(prometheus.HistogramOpts{
		Namespace: custompromauto.Namespace,
		Name:      "request_duration_seconds",
		Help:      "Time spent serving json-rpc requests",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"method"})
)

func observe(method Method, code int, start time.Time) {
	label := string(method)
	if label == "" {
		label = "unknown"
	}
	requestsTotal.WithLabelValues(label, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}
