// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Results recorded for operations.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// FriendActions counts manageFriendRequest calls by action and result code
	FriendActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hom_friend_actions_total",
		Help: "Friend request actions by action and result",
	}, []string{"action", "result"})

	TasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hom_tasks_completed_total",
		Help: "Tasks moved from pending to completed",
	})

	XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hom_xp_awarded_total",
		Help: "Total XP granted by task completions",
	})

	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hom_level_ups_total",
		Help: "Levels gained across all users",
	})

	CoachesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hom_coaches_removed_total",
		Help: "Coach profiles removed together with their classes",
	})

	// AIRequests counts model calls by flow and result
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hom_ai_requests_total",
		Help: "AI flow invocations by flow and result",
	}, []string{"flow", "result"})

	LiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hom_live_subscriptions",
		Help: "Open realtime subscriptions",
	})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hom_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Result maps an error onto a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
