package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	usecaseport "github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/dto"
)

// WithdrawalHandler handles withdrawal HTTP requests
type WithdrawalHandler struct {
	ledger usecaseport.LedgerUseCase
	logger coreport.Logger
}

// NewWithdrawalHandler creates a new withdrawal handler instance
func NewWithdrawalHandler(ledgerService usecaseport.LedgerUseCase, logger coreport.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{
		ledger: ledgerService,
		logger: logger,
	}
}

// RequestWithdrawal handles the POST /account/:accountId/withdrawal endpoint
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid withdrawal request", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.ledger.RequestWithdrawal(c.Request.Context(), accountID, req.Amount, req.PayoutDestination)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewWithdrawalResponse(result.Request)
	response.Balance = result.Balance

	c.JSON(http.StatusCreated, response)
}

// ResolveWithdrawal handles the POST /withdrawal/:requestId/resolve endpoint.
// Administrative collaborators approve or reject a pending request; rejection
// returns the debited points to the account.
func (h *WithdrawalHandler) ResolveWithdrawal(c *gin.Context) {
	requestID := c.Param("requestId")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Missing request ID",
		})
		return
	}

	var req dto.ResolveWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid withdrawal resolution request", map[string]any{
			"request_id": requestID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	request, err := h.ledger.ResolveWithdrawal(c.Request.Context(), requestID, *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(request))
}
