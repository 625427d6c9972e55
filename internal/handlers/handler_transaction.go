package handlers

import (
	"errors"
	"io"
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	showDetails        bool
}

func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, showDetails bool) {
	h := &transactionHandler{transactionService: ts, showDetails: showDetails}

	rg.GET("/transactions", h.listTransactions)
	rg.GET("/transfer-analytics", h.getAnalytics)
	rg.POST("/simulate-credit", h.simulateCredit)
}

// listTransactions godoc
// @Summary List ledger entries
// @Description Returns the caller's ledger entries, newest first.
// @Tags transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, err, "transaction query")
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getAnalytics godoc
// @Summary Transfer analytics
// @Description Counts and sums the caller's ledger entries over a window.
// @Tags transactions
// @Produce json
// @Param period query string false "week, month or year" default(month)
// @Success 200 {object} dto.TransferAnalyticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfer-analytics [get]
func (h *transactionHandler) getAnalytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.TransferAnalyticsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, err, "analytics query")
		return
	}

	analytics, err := h.transactionService.GetTransferAnalytics(c.Request.Context(), userID, params.Period)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferAnalyticsResponse(analytics))
}

// simulateCredit godoc
// @Summary Simulate an incoming credit
// @Description Credits the caller's first active account. The amount is random (10 to 100) when omitted.
// @Tags transactions
// @Accept json
// @Produce json
// @Param credit body dto.SimulateCreditRequest false "Optional amount and description"
// @Success 201 {object} dto.SimulateCreditResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /simulate-credit [post]
func (h *transactionHandler) simulateCredit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.SimulateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		bindFailed(c, err, "simulate-credit request")
		return
	}

	txn, summary, err := h.transactionService.SimulateCredit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusCreated, dto.SimulateCreditResponse{
		Transaction:  dto.ToTransactionResponse(txn),
		TotalBalance: summary.TotalBalance,
	})
}
