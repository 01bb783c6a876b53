package dto

import (
	usecaseport "github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
)

// AdWatchCreditRequest represents the API request for crediting a watched ad
type AdWatchCreditRequest struct {
	EventID string `json:"eventId"`
}

// CreditResponse represents the API response for a credit attempt. A duplicate
// event is an idempotent success with AlreadyCredited set and the balance
// unchanged.
type CreditResponse struct {
	EventID         string `json:"eventId"`
	AlreadyCredited bool   `json:"alreadyCredited"`
	Points          int64  `json:"points,omitempty"`
	Balance         int64  `json:"balance"`
	PriorOutcome    string `json:"priorOutcome,omitempty"`
}

// NewCreditResponse maps a credit result to its API representation
func NewCreditResponse(result *usecaseport.CreditResult) CreditResponse {
	return CreditResponse{
		EventID:         result.EventID,
		AlreadyCredited: result.Status == usecaseport.StatusAlreadyCredited,
		Points:          result.Points,
		Balance:         result.Balance,
		PriorOutcome:    string(result.PriorOutcome),
	}
}
