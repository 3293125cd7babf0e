package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/desichan/desichan/shared/middleware/metrics"
)

var (
	contentCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "content_created_total",
			Help:      "Posts and comments created",
		},
		[]string{"kind"},
	)

	contentDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "content_deleted_total",
			Help:      "Posts and comments deleted, by whether the actor was the author or an admin",
		},
		[]string{"kind", "by"},
	)

	moderationDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "moderation_denied_total",
			Help:      "Mutations rejected by the owner-or-admin rule",
		},
		[]string{"action"},
	)

	reportsFiled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "reports_filed_total",
		Help:      "Reports filed against posts or comments",
	})

	reportsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "reports_resolved_total",
		Help:      "Reports moved from pending to resolved",
	})
)
