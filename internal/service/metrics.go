package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "webwriter"

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Store mutations applied, by operation.",
	}, []string{"operation"})

	savesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "saves_total",
		Help:      "Documents written to the persistence bridge.",
	})

	saveErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "save_errors_total",
		Help:      "Failed writes to the persistence bridge.",
	})

	historyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "history_total",
		Help:      "Applied undo and redo steps.",
	}, []string{"direction"})

	externalReloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "external_reloads_total",
		Help:      "Reloads triggered by another context writing the storage key.",
	})

	decodeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "store",
		Name:      "decode_errors_total",
		Help:      "Persisted documents that could not be decoded.",
	})
)
