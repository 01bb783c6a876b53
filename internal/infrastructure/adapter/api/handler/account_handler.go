package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	usecaseport "github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/dto"
)

// AccountHandler handles account lifecycle and query HTTP requests
type AccountHandler struct {
	accounts usecaseport.AccountUseCase
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts usecaseport.AccountUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// parseAccountID extracts the account ID path parameter
func parseAccountID(c *gin.Context) (uint64, bool) {
	accountID, err := strconv.ParseUint(c.Param("accountId"), 10, 64)
	if err != nil || accountID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAccountID),
			Message: "Invalid account ID format",
		})
		return 0, false
	}
	return accountID, true
}

// CreateAccount handles the POST /account endpoint
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid account creation request", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	account, err := h.accounts.CreateAccount(c.Request.Context(), req.AccountID, req.ReferrerCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(account))
}

// GetAccount handles the GET /account/:accountId endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// ListTransactions handles the GET /account/:accountId/transactions endpoint
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	transactions, err := h.accounts.ListTransactions(c.Request.Context(), accountID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId":    accountID,
		"transactions": dto.NewTransactionResponses(transactions),
	})
}

// ListWithdrawals handles the GET /account/:accountId/withdrawals endpoint
func (h *AccountHandler) ListWithdrawals(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	requests, err := h.accounts.ListWithdrawals(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.WithdrawalResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, dto.NewWithdrawalResponse(request))
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId":   accountID,
		"withdrawals": responses,
	})
}
