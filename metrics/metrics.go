package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "carwash_sql_query_duration_seconds",
	Help: "Duration of sql queries in seconds",
}, []string{"query"})

var CategoryTreeIssues = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "carwash_category_tree_issues",
	Help: "Number of warehouse categories that could not be placed in the tree, by issue kind",
}, []string{"kind"})

var PayoutsCalculated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "carwash_payouts_calculated_total",
	Help: "Number of shift payouts calculated, by status",
}, []string{"status"})

var ShiftEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "carwash_shift_events_published_total",
	Help: "Number of shift events written to kafka, by result",
}, []string{"result"})

var ShiftSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "carwash_shift_subscribers",
	Help: "Current number of websocket connections watching shift reports",
})
