package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	showDetails    bool
}

// ListAccountsResponse wraps the caller's active accounts.
type ListAccountsResponse struct {
	Accounts []dto.AccountResponse `json:"accounts"`
}

func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, showDetails bool) {
	h := &accountHandler{accountService: as, showDetails: showDetails}

	rg.GET("/balance", h.getBalance)
	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("/link", h.linkAccount)
	}
}

// getBalance godoc
// @Summary Balance summary
// @Description Lists active accounts with their combined balance.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	summary, err := h.accountService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(summary))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the caller's active accounts, oldest first.
// @Tags accounts
// @Produce json
// @Success 200 {object} ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, err := h.accountService.ListActiveAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// linkAccount godoc
// @Summary Link a bank account
// @Description Links a mock external account with a random opening balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.LinkAccountRequest true "Bank details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/link [post]
func (h *accountHandler) linkAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err, "link account request")
		return
	}

	account, err := h.accountService.LinkAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, h.showDetails)
		return
	}
	middleware.GetLoggerFromContext(c).Info("Account linked", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}
