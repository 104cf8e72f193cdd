package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/tonrpc/internal/custompromauto"
)

var lookups = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "cache_lookups_total",
	Help:      "Number of cache lookups by result",
}, []string{"result"})
