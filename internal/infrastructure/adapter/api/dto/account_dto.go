package dto

import (
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// CreateAccountRequest represents the API request for creating an account
type CreateAccountRequest struct {
	AccountID    uint64 `json:"accountId" binding:"required"`
	ReferrerCode string `json:"referrerCode"`
}

// AccountResponse represents the API response for an account's balance and counters
type AccountResponse struct {
	AccountID       uint64    `json:"accountId"`
	Points          int64     `json:"points"`
	TotalEarned     int64     `json:"totalEarned"`
	TotalWithdrawn  int64     `json:"totalWithdrawn"`
	DailyWatchCount int       `json:"dailyWatchCount"`
	ReferralCode    string    `json:"referralCode"`
	ReferredBy      *uint64   `json:"referredBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewAccountResponse maps an account entity to its API representation
func NewAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		AccountID:       account.ID,
		Points:          account.Points,
		TotalEarned:     account.TotalEarned,
		TotalWithdrawn:  account.TotalWithdrawn,
		DailyWatchCount: account.DailyWatchCount,
		ReferralCode:    account.ReferralCode,
		ReferredBy:      account.ReferredBy,
		CreatedAt:       account.CreatedAt,
	}
}
