package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

func TestDecodeOfferCompletion(t *testing.T) {
	testCases := []struct {
		name     string
		payload  map[string]any
		expected OfferCompletion
	}{
		{
			name:     "canonical keys",
			payload:  map[string]any{"eventId": "evt-1", "rewardPoints": float64(25), "completed": true},
			expected: OfferCompletion{EventID: "evt-1", RewardPoints: 25, Completed: true},
		},
		{
			name:     "snake case provider",
			payload:  map[string]any{"event_id": "evt-2", "reward": float64(10), "success": true},
			expected: OfferCompletion{EventID: "evt-2", RewardPoints: 10, Completed: true},
		},
		{
			name:     "transaction id alias",
			payload:  map[string]any{"trans_id": "tx-9", "payout": "15"},
			expected: OfferCompletion{EventID: "tx-9", RewardPoints: 15, Completed: true},
		},
		{
			name:     "numeric event id coerced to string",
			payload:  map[string]any{"offerId": float64(12345), "points": float64(5)},
			expected: OfferCompletion{EventID: "12345", RewardPoints: 5, Completed: true},
		},
		{
			name:     "large numeric event id stays in decimal form",
			payload:  map[string]any{"transId": float64(1234568000), "points": float64(5)},
			expected: OfferCompletion{EventID: "1234568000", RewardPoints: 5, Completed: true},
		},
		{
			name:     "fractional numeric event id keeps full precision",
			payload:  map[string]any{"txId": 1234568000.5, "points": float64(5)},
			expected: OfferCompletion{EventID: "1234568000.5", RewardPoints: 5, Completed: true},
		},
		{
			name:     "missing event id synthesized later",
			payload:  map[string]any{"reward": float64(20)},
			expected: OfferCompletion{EventID: "", RewardPoints: 20, Completed: true},
		},
		{
			name:     "missing reward gets zero for the default",
			payload:  map[string]any{"eventId": "evt-3"},
			expected: OfferCompletion{EventID: "evt-3", RewardPoints: 0, Completed: true},
		},
		{
			name:     "completion defaults to true",
			payload:  map[string]any{"eventId": "evt-4", "reward": float64(5)},
			expected: OfferCompletion{EventID: "evt-4", RewardPoints: 5, Completed: true},
		},
		{
			name:     "explicit failure status",
			payload:  map[string]any{"eventId": "evt-5", "reward": float64(5), "status": "failed"},
			expected: OfferCompletion{EventID: "evt-5", RewardPoints: 5, Completed: false},
		},
		{
			name:     "string status success variant",
			payload:  map[string]any{"eventId": "evt-6", "status": "credited"},
			expected: OfferCompletion{EventID: "evt-6", Completed: true},
		},
		{
			name:     "numeric status",
			payload:  map[string]any{"eventId": "evt-7", "completed": float64(0)},
			expected: OfferCompletion{EventID: "evt-7", Completed: false},
		},
		{
			name:     "whitespace event id treated as missing",
			payload:  map[string]any{"eventId": "   ", "sid": "fallback-id"},
			expected: OfferCompletion{EventID: "fallback-id", Completed: true},
		},
		{
			name:     "string reward with whitespace",
			payload:  map[string]any{"eventId": "evt-8", "amount": " 42 "},
			expected: OfferCompletion{EventID: "evt-8", RewardPoints: 42, Completed: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := DecodeOfferCompletion(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestDecodeOfferCompletion_UnusableReward(t *testing.T) {
	testCases := []struct {
		name    string
		payload map[string]any
	}{
		{name: "fractional reward", payload: map[string]any{"eventId": "evt", "reward": 12.5}},
		{name: "non-numeric string", payload: map[string]any{"eventId": "evt", "reward": "lots"}},
		{name: "unsupported type", payload: map[string]any{"eventId": "evt", "reward": []any{1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeOfferCompletion(tc.payload)
			assert.ErrorIs(t, err, errs.ErrInvalidReward)
		})
	}
}
