package custompromauto

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric registered by the gateway.
const Namespace = "tonrpc"

var registry *prometheus.Registry
var auto promauto.Factory

func init() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	auto = promauto.With(registry)
}

func Auto() promauto.Factory {
	return auto
}

func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the private registry only, leaving out the default http handler metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
