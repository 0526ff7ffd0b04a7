package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AlertTransitions counts alert lifecycle attempts by target status and outcome.
	AlertTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watchdog_alert_transitions_total",
		Help: "Alert lifecycle transitions by target status and outcome",
	}, []string{"to", "outcome"})

	// SnapshotRefreshes counts report snapshot calculations by outcome.
	SnapshotRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watchdog_snapshot_refreshes_total",
		Help: "Report snapshot calculations by outcome",
	}, []string{"outcome"})
)
