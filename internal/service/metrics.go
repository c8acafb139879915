package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_order_lines_added_total",
			Help: "Items added to orders, by plain or customized",
		},
		[]string{"kind"},
	)

	ordersSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "frontdesk_orders_submitted_total",
			Help: "Orders handed to the kitchen",
		},
	)

	orderTotals = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "frontdesk_order_total",
			Help:    "Grand total of submitted orders",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200},
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "frontdesk_active_sessions",
			Help: "Open ordering sessions",
		},
	)
)
