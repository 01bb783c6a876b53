// Package rewardday resolves wall-clock instants to reward days: the calendar
// day, in one fixed time zone, that daily quotas are scoped to.
package rewardday

import (
	"fmt"
	"time"
)

// DefaultTimeZone is the reward-day zone used when none is configured.
const DefaultTimeZone = "Asia/Kolkata"

// Resolver maps instants to reward days in a fixed time zone.
type Resolver struct {
	loc *time.Location
}

// NewResolver creates a resolver for the named IANA time zone.
func NewResolver(tzName string) (*Resolver, error) {
	if tzName == "" {
		tzName = DefaultTimeZone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid reward time zone %q: %w", tzName, err)
	}
	return &Resolver{loc: loc}, nil
}

// MustNewResolver is NewResolver for statically known zone names.
func MustNewResolver(tzName string) *Resolver {
	r, err := NewResolver(tzName)
	if err != nil {
		panic(err)
	}
	return r
}

// RewardDay returns the reward day containing now: midnight of the calendar
// day in the resolver's zone.
func (r *Resolver) RewardDay(now time.Time) time.Time {
	local := now.In(r.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
}

// NeedsReset reports whether a daily counter stamped with lastReset belongs to
// an earlier reward day than now. The reset itself must be applied inside the
// same store transaction as the mutation that observed it.
func (r *Resolver) NeedsReset(lastReset time.Time, now time.Time) bool {
	return !r.RewardDay(lastReset).Equal(r.RewardDay(now))
}

// Location returns the resolver's fixed time zone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}
