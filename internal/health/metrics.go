package health

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/tonrpc/internal/custompromauto"
)

var headSeqno = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
	Namespace: custompromauto.Namespace,
	Name:      "masterchain_head_seqno",
	Help:      "Seqno of the last masterchain block seen on the upstream",
})
