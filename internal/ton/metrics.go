package ton

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/tonrpc/internal/custompromauto"
)

var (
	upstreamRequests = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "upstream_requests_total",
		Help:      "Number of upstream calls by method and outcome",
	}, []string{"method", "outcome"})

	upstreamRetries = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "upstream_retries_total",
		Help:      "Number of retried upstream http requests",
	}, []string{"method"})

	streamedPages = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "upstream_stream_pages_total",
		Help:      "Number of pages fetched while streaming transactions",
	}, []string{"method"})

	failedHeadPolls = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "upstream_failed_head_polls_total",
		Help:      "Number of failed masterchain info polls",
	})
)
