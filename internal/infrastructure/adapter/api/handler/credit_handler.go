package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	usecaseport "github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
	"github.com/watchearn/rewards-ledger/internal/domain/usecase/ledger"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/dto"
)

// CreditHandler handles crediting HTTP requests
type CreditHandler struct {
	ledger usecaseport.LedgerUseCase
	logger coreport.Logger
}

// NewCreditHandler creates a new credit handler instance
func NewCreditHandler(ledgerService usecaseport.LedgerUseCase, logger coreport.Logger) *CreditHandler {
	return &CreditHandler{
		ledger: ledgerService,
		logger: logger,
	}
}

// CreditAdWatch handles the POST /account/:accountId/credit/ad-watch endpoint.
// An omitted event id is allowed; the service synthesizes a deterministic one
// from the account's daily watch slot.
func (h *CreditHandler) CreditAdWatch(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.AdWatchCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid ad-watch credit request", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.ledger.CreditAdWatch(c.Request.Context(), accountID, req.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreditResponse(result))
}

// CreditOffer handles the POST /account/:accountId/credit/offer endpoint.
// Offer-wall providers post loosely-typed payloads; the raw body is normalized
// before it reaches the service. Incomplete signals are recorded as rejected
// admissions, so a replayed or manipulated retry of the same event cannot
// credit later.
func (h *CreditHandler) CreditOffer(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Invalid offer completion payload", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	completion, err := ledger.DecodeOfferCompletion(payload)
	if err != nil {
		h.logger.Warn("Unparseable offer completion payload", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
		respondError(c, err)
		return
	}

	if !completion.Completed {
		if err := h.ledger.RejectOfferTask(c.Request.Context(), accountID, completion.EventID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"eventId":  completion.EventID,
			"credited": false,
		})
		return
	}

	result, err := h.ledger.CreditOfferTask(c.Request.Context(), accountID, completion.EventID, completion.RewardPoints)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCreditResponse(result))
}
