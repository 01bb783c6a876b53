package dto

import (
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// WithdrawalRequestBody represents the API request for a withdrawal
type WithdrawalRequestBody struct {
	Amount            int64  `json:"amount" binding:"required,gt=0"`
	PayoutDestination string `json:"payoutDestination" binding:"required"`
}

// ResolveWithdrawalRequest represents the administrative resolution request
type ResolveWithdrawalRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// WithdrawalResponse represents the API view of a withdrawal request
type WithdrawalResponse struct {
	RequestID         string     `json:"requestId"`
	AccountID         uint64     `json:"accountId"`
	Amount            int64      `json:"amount"`
	PointsDebited     int64      `json:"pointsDebited"`
	PayoutDestination string     `json:"payoutDestination"`
	Status            string     `json:"status"`
	Balance           int64      `json:"balance,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
}

// NewWithdrawalResponse maps a withdrawal request entity to its API representation
func NewWithdrawalResponse(request *entity.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		RequestID:         request.ID,
		AccountID:         request.AccountID,
		Amount:            request.AmountCurrency,
		PointsDebited:     request.PointsDebited,
		PayoutDestination: request.PayoutDestination,
		Status:            string(request.Status),
		CreatedAt:         request.CreatedAt,
		ResolvedAt:        request.ResolvedAt,
	}
}
