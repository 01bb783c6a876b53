package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// PrometheusMetrics implements the Metrics port with Prometheus counters.
type PrometheusMetrics struct {
	creditsTotal        *prometheus.CounterVec
	creditPointsTotal   *prometheus.CounterVec
	duplicatesTotal     *prometheus.CounterVec
	quotaRejectedTotal  prometheus.Counter
	withdrawalsTotal    prometheus.Counter
	withdrawalAmount    prometheus.Counter
	withdrawalsResolved *prometheus.CounterVec
}

// NewPrometheusMetrics registers the ledger counters on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func NewPrometheusMetrics(reg prometheus.Registerer) core.Metrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		creditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_credits_total",
			Help: "Accepted ledger credits by transaction type.",
		}, []string{"type"}),
		creditPointsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_credit_points_total",
			Help: "Points credited by transaction type.",
		}, []string{"type"}),
		duplicatesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_duplicate_events_total",
			Help: "Completion events suppressed by the idempotency guard.",
		}, []string{"type"}),
		quotaRejectedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewards_quota_rejections_total",
			Help: "Ad-watch credits refused by the daily limit.",
		}),
		withdrawalsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewards_withdrawals_total",
			Help: "Accepted withdrawal requests.",
		}),
		withdrawalAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "rewards_withdrawal_amount_total",
			Help: "Total currency amount of accepted withdrawal requests.",
		}),
		withdrawalsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rewards_withdrawals_resolved_total",
			Help: "Administrative withdrawal resolutions by final status.",
		}, []string{"status"}),
	}
}

// CreditApplied counts one accepted credit of the given transaction type
func (m *PrometheusMetrics) CreditApplied(txType string, points int64) {
	m.creditsTotal.WithLabelValues(txType).Inc()
	m.creditPointsTotal.WithLabelValues(txType).Add(float64(points))
}

// DuplicateSuppressed counts one suppressed duplicate event
func (m *PrometheusMetrics) DuplicateSuppressed(txType string) {
	m.duplicatesTotal.WithLabelValues(txType).Inc()
}

// QuotaRejected counts one daily-limit rejection
func (m *PrometheusMetrics) QuotaRejected() {
	m.quotaRejectedTotal.Inc()
}

// WithdrawalRequested counts one accepted withdrawal debit
func (m *PrometheusMetrics) WithdrawalRequested(amountCurrency int64) {
	m.withdrawalsTotal.Inc()
	m.withdrawalAmount.Add(float64(amountCurrency))
}

// WithdrawalResolved counts one administrative resolution by status
func (m *PrometheusMetrics) WithdrawalResolved(status string) {
	m.withdrawalsResolved.WithLabelValues(status).Inc()
}
