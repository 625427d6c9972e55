package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// TransferResponse wraps the sender's ledger entry.
type TransferResponse struct {
	Message     string                  `json:"message"`
	Transaction dto.TransactionResponse `json:"transaction"`
}

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
	showDetails     bool
}

func registerTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvcFacade, showDetails bool, guards ...gin.HandlerFunc) {
	h := &transferHandler{transferService: ts, showDetails: showDetails}
	rg.POST("/transfer", append(guards, h.transfer)...)
	rg.POST("/bulk-transfer", append(guards, h.bulkTransfer)...)
}

// transfer godoc
// @Summary Send money
// @Description Moves funds to another customer after PIN verification. Send an Idempotency-Key header to make retries safe.
// @Tags transfers
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-chosen key for safe retries"
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient balance"
// @Failure 401 {object} ErrorResponse "Invalid PIN"
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 409 {object} ErrorResponse "Duplicate request in flight"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfer [post]
func (h *transferHandler) transfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "transfer request")
		return
	}

	txn, err := h.transferService.Transfer(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Transfer accepted", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, TransferResponse{
		Message:     "Transfer completed successfully",
		Transaction: dto.ToTransactionResponse(txn),
	})
}

// bulkTransfer godoc
// @Summary Pay several recipients
// @Description Sends 2 to 50 transfers under one PIN check, one shared priority and one batch ID. Items are recorded one by one; a recipient that cannot be paid fails only its own item.
// @Tags transfers
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-chosen key for safe retries"
// @Param transfers body dto.BulkTransferRequest true "Batch details"
// @Success 201 {object} dto.BulkTransferResponse
// @Failure 400 {object} ErrorResponse "Validation error or insufficient balance"
// @Failure 401 {object} ErrorResponse "Invalid PIN"
// @Failure 409 {object} ErrorResponse "Duplicate request in flight"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bulk-transfer [post]
func (h *transferHandler) bulkTransfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.BulkTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "bulk transfer request")
		return
	}

	result, err := h.transferService.BulkTransfer(c.Request.Context(), userID, req.ToDomain())
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Bulk transfer accepted",
		slog.String("batch_id", result.BatchID),
		slog.Int("completed", result.Completed),
		slog.Int("failed", result.Failed))
	c.JSON(http.StatusCreated, dto.ToBulkTransferResponse(result))
}
