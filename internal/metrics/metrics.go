package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики бизнес-операций. Отдаются наружу через /metrics (promhttp).
var (
	InstancesMaterialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gym_instances_materialized_total",
		Help: "Class instances created by schedule materialization.",
	})

	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_class_registrations_total",
		Help: "Class registration operations by outcome.",
	}, []string{"outcome"}) // registered | waitlisted | unregistered

	LifecycleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_lifecycle_transitions_total",
		Help: "State machine transitions by entity and operation.",
	}, []string{"entity", "operation"})

	ExpiredMemberships = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gym_memberships_expired_total",
		Help: "Memberships marked expired by the nightly sweep.",
	})
)
