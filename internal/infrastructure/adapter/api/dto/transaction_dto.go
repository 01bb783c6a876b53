package dto

import (
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// TransactionResponse represents the API view of one ledger record
type TransactionResponse struct {
	ID            uint64    `json:"id"`
	Type          string    `json:"type"`
	Points        int64     `json:"points"`
	BalanceAfter  int64     `json:"balanceAfter"`
	SourceEventID *string   `json:"sourceEventId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewTransactionResponses maps ledger records to their API representation
func NewTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, TransactionResponse{
			ID:            tx.ID,
			Type:          string(tx.Type),
			Points:        tx.Points,
			BalanceAfter:  tx.BalanceAfter,
			SourceEventID: tx.SourceEventID,
			CreatedAt:     tx.CreatedAt,
		})
	}
	return out
}
