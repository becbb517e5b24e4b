package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relsave"

var (
	// Inserts counts parent inserts by entity, attachment strategy and result.
	Inserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inserts_total",
		Help:      "Parent entity inserts by attachment strategy.",
	}, []string{"entity", "strategy", "result"})

	// ReferenceLoads counts reads caused by resolving managed references.
	ReferenceLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_loads_total",
		Help:      "Reads of referenced entities triggered by managed references.",
	}, []string{"entity"})
)

func ObserveInsert(entity, strategy string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Inserts.WithLabelValues(entity, strategy, result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
