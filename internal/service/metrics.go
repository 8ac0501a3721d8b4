package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stride_feed_builds_total",
		Help: "Total feed builds by outcome.",
	}, []string{"outcome"})

	feedFriendFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stride_feed_friend_fetch_failures_total",
		Help: "Per-friend activity fetches skipped due to errors.",
	})

	reactionsSetTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stride_reactions_set_total",
		Help: "Total reactions inserted.",
	})

	leaderboardBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stride_leaderboard_builds_total",
		Help: "Total leaderboard row compositions.",
	})
)
