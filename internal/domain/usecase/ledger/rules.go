package ledger

import (
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

// Rules holds the reward tunables. Loaded from configuration; the defaults
// match the production rates.
type Rules struct {
	// AdWatchPoints is the fixed credit for one completed timed ad view.
	AdWatchPoints int64
	// DailyWatchLimit caps ad-watch credits per reward day.
	DailyWatchLimit int
	// OfferDefaultPoints is used when a completion payload omits the reward.
	OfferDefaultPoints int64
	// OfferMaxPoints bounds abuse from manipulated callback payloads.
	OfferMaxPoints int64
	// ReferralBonusPoints is the one-time credit to the referrer.
	ReferralBonusPoints int64
	// ReferralThresholdPoints is the referred account's lifetime earnings that
	// qualify the referrer for the bonus.
	ReferralThresholdPoints int64
	// PointsPerCurrencyUnit converts withdrawal amounts to points.
	PointsPerCurrencyUnit int64
	// MinWithdrawalAmount is the smallest withdrawal, in currency units.
	MinWithdrawalAmount int64
}

// DefaultRules returns the production reward rates.
func DefaultRules() Rules {
	return Rules{
		AdWatchPoints:           5,
		DailyWatchLimit:         3,
		OfferDefaultPoints:      10,
		OfferMaxPoints:          500,
		ReferralBonusPoints:     50,
		ReferralThresholdPoints: 100,
		PointsPerCurrencyUnit:   10,
		MinWithdrawalAmount:     100,
	}
}

// NormalizeOfferReward applies the default for an omitted reward and clamps
// oversized values. A negative reward is rejected outright.
func (r Rules) NormalizeOfferReward(points int64) (int64, error) {
	if points < 0 {
		return 0, errs.ErrInvalidReward
	}
	if points == 0 {
		points = r.OfferDefaultPoints
	}
	if points > r.OfferMaxPoints {
		points = r.OfferMaxPoints
	}
	if points <= 0 {
		return 0, errs.ErrInvalidReward
	}
	return points, nil
}

// RequiredPoints converts a withdrawal amount in currency units to points.
func (r Rules) RequiredPoints(amountCurrency int64) int64 {
	return amountCurrency * r.PointsPerCurrencyUnit
}
