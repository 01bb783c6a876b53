package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

// OfferCompletion is the canonical form of an offer-wall completion signal.
// Providers emit loosely-typed payloads with varying key names; everything is
// normalized to this tuple at the boundary before it reaches the service.
type OfferCompletion struct {
	EventID      string
	RewardPoints int64
	Completed    bool
}

// Key variants observed across offer-wall providers.
var (
	offerEventKeys  = []string{"eventId", "event_id", "offerId", "offer_id", "transId", "trans_id", "txId", "sid"}
	offerRewardKeys = []string{"rewardPoints", "reward", "points", "payout", "amount", "currency_amount"}
	offerStatusKeys = []string{"completed", "success", "status"}
)

// DecodeOfferCompletion normalizes a raw provider payload. A missing event id
// yields an empty EventID (the service synthesizes one rather than skipping
// dedup); a missing reward yields zero (the service applies the default);
// an unparseable reward is an InvalidReward error. Completion defaults to
// true because several providers only post on success.
func DecodeOfferCompletion(payload map[string]any) (OfferCompletion, error) {
	out := OfferCompletion{Completed: true}

	for _, key := range offerEventKeys {
		if v, ok := payload[key]; ok {
			if s := coerceEventID(v); s != "" {
				out.EventID = s
				break
			}
		}
	}

	for _, key := range offerRewardKeys {
		v, ok := payload[key]
		if !ok {
			continue
		}
		points, err := coerceInt64(v)
		if err != nil {
			return OfferCompletion{}, fmt.Errorf("%w: reward key %q: %s", errs.ErrInvalidReward, key, err.Error())
		}
		out.RewardPoints = points
		break
	}

	for _, key := range offerStatusKeys {
		v, ok := payload[key]
		if !ok {
			continue
		}
		out.Completed = coerceCompleted(v)
		break
	}

	return out, nil
}

// coerceEventID renders a provider event id as a stable string. JSON decodes
// numeric ids as float64; formatting those with %v would switch to scientific
// notation past ~1e6 and make replays of the same id look distinct.
func coerceEventID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// coerceInt64 accepts the number encodings providers actually send: JSON
// numbers (float64), integers, and numeric strings.
func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("non-integral value %v", n)
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable value %q", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func coerceCompleted(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "ok", "complete", "completed", "credited", "success":
			return true
		}
		return false
	case float64:
		return s != 0
	default:
		return false
	}
}
