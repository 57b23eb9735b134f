package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	balanceDebts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitease_balance_debts",
		Help:    "Number of debts produced per group balance computation",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	expensesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitease_expenses_created_total",
		Help: "Expenses recorded, by split type",
	}, []string{"split_type"})
)
