package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	creditHandler *handler.CreditHandler,
	withdrawalHandler *handler.WithdrawalHandler,
	healthCheck gin.HandlerFunc,
) {
	// Account routes
	accountRoutes := router.Group("/account")
	{
		accountRoutes.POST("", accountHandler.CreateAccount)
		accountRoutes.GET("/:accountId", accountHandler.GetAccount)
		accountRoutes.GET("/:accountId/transactions", accountHandler.ListTransactions)
		accountRoutes.GET("/:accountId/withdrawals", accountHandler.ListWithdrawals)

		accountRoutes.POST("/:accountId/credit/ad-watch", creditHandler.CreditAdWatch)
		accountRoutes.POST("/:accountId/credit/offer", creditHandler.CreditOffer)

		accountRoutes.POST("/:accountId/withdrawal", withdrawalHandler.RequestWithdrawal)
	}

	// Administrative settlement route
	router.POST("/withdrawal/:requestId/resolve", withdrawalHandler.ResolveWithdrawal)

	// Operational endpoints
	if healthCheck != nil {
		router.GET("/health", healthCheck)
	} else {
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
