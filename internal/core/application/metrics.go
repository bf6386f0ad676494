package application

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	combosComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coinpurse",
		Name:      "combos_computed_total",
		Help:      "Number of coin combinations computed, by strategy and outcome.",
	}, []string{"strategy", "found"})

	coinsSpent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coinpurse",
		Name:      "coins_spent_total",
		Help:      "Number of coins spent, by country.",
	}, []string{"country"})

	valueSpent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coinpurse",
		Name:      "value_spent_total",
		Help:      "Value spent in the smallest currency unit, by country.",
	}, []string{"country"})
)

func observeCalculation(result *CalculationResult) {
	combosComputed.WithLabelValues(
		result.Strategy.String(), strconv.FormatBool(result.Found),
	).Inc()
}

func observeSpend(country string, coins, value int64) {
	coinsSpent.WithLabelValues(country).Add(float64(coins))
	valueSpent.WithLabelValues(country).Add(float64(value))
}
