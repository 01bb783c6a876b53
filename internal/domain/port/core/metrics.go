package core

// Metrics records ledger activity counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// CreditApplied counts one accepted credit of the given transaction type.
	CreditApplied(txType string, points int64)
	// DuplicateSuppressed counts one completion event rejected by the
	// idempotency guard.
	DuplicateSuppressed(txType string)
	// QuotaRejected counts one ad-watch credit refused by the daily limit.
	QuotaRejected()
	// WithdrawalRequested counts one accepted withdrawal debit.
	WithdrawalRequested(amountCurrency int64)
	// WithdrawalResolved counts one administrative resolution by status.
	WithdrawalResolved(status string)
}

// NoopMetrics discards all observations. Used in tests and when metrics are
// disabled.
type NoopMetrics struct{}

func (NoopMetrics) CreditApplied(string, int64) {}
func (NoopMetrics) DuplicateSuppressed(string) {}
func (NoopMetrics) QuotaRejected() {}
func (NoopMetrics) WithdrawalRequested(int64) {}
func (NoopMetrics) WithdrawalResolved(string) {}
