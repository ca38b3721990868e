// Package metrics registra los contadores Prometheus del motor de inventario.
// Se exponen vía /metrics (promhttp) cuando METRICS_ENABLED está activo.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsRecorded cuenta los movimientos registrados por tipo
	// (INGRESO, EGRESO).
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockcontrol",
		Name:      "movements_recorded_total",
		Help:      "Movimientos de stock registrados, por tipo.",
	}, []string{"type"})

	// ProjectsCompleted cuenta las finalizaciones de proyecto (liquidaciones).
	ProjectsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockcontrol",
		Name:      "projects_completed_total",
		Help:      "Proyectos finalizados (reservas liquidadas).",
	})

	// LedgerRejections cuenta las operaciones rechazadas por el motor,
	// por operación.
	LedgerRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockcontrol",
		Name:      "ledger_rejections_total",
		Help:      "Operaciones del motor de inventario rechazadas, por operación.",
	}, []string{"operation"})
)
