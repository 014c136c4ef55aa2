// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	PasswordResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_password_resets_total",
			Help: "Password reset events by stage (requested, redeemed, rejected).",
		},
		[]string{"stage"},
	)

	TokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_token_verifications_total",
			Help: "Total number of session token verification attempts by status.",
		},
		[]string{"status"},
	)

	ArticleViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_article_views_total",
		Help: "Total number of counted article reads.",
	})

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_notifications_total",
			Help: "Outbound email deliveries by status.",
		},
		[]string{"status"},
	)
)
