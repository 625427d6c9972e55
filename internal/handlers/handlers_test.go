package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	portssvc "github.com/SscSPs/neobank_backend/internal/core/ports/services"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/SscSPs/neobank_backend/internal/handlers"
	"github.com/SscSPs/neobank_backend/internal/middleware"
	"github.com/SscSPs/neobank_backend/internal/platform/config"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "9f0c6a52-5b7e-4a53-9d0e-2f4c1b0b9a11"

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	cfg       *config.Config
	redis     *miniredis.Miniredis
	users     *MockUserService
	tokens    *MockTokenService
	accounts  *MockAccountService
	resolver  *MockResolver
	transfers *MockTransferService
	txns      *MockTransactionService
	insights  *MockInsightService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:      "test-secret-key-that-is-long-enough",
		JWTIssuer:      "neobank-test",
		IdempotencyTTL: time.Hour,
	}
	suite.users = new(MockUserService)
	suite.tokens = new(MockTokenService)
	suite.accounts = new(MockAccountService)
	suite.resolver = new(MockResolver)
	suite.transfers = new(MockTransferService)
	suite.txns = new(MockTransactionService)
	suite.insights = new(MockInsightService)
	suite.redis = miniredis.RunT(suite.T())
	suite.router = suite.newRouter(suite.cfg)
}

func (suite *HandlerTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	container := &portssvc.ServiceContainer{
		User:        suite.users,
		Token:       suite.tokens,
		Account:     suite.accounts,
		Resolver:    suite.resolver,
		Transfer:    suite.transfers,
		Transaction: suite.txns,
		Insight:     suite.insights,
	}
	cache := redis.NewClient(&redis.Options{Addr: suite.redis.Addr()})
	suite.T().Cleanup(func() { _ = cache.Close() })
	handlers.RegisterRoutes(r, cfg, container, cache)
	return r
}

func (suite *HandlerTestSuite) token() string {
	token, err := utils.GenerateJWT(testUserID, suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer, time.Now())
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorOf(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func transferBody() map[string]any {
	return map[string]any{
		"recipientPublicId": "CUST_BOB123456",
		"amount":            1000,
		"category":          "Food",
		"pin":               "1234",
	}
}

func sentEntry() *domain.Transaction {
	ref := "c0ffee00-0000-4000-8000-000000000001"
	return &domain.Transaction{
		TransactionID:     "TXN_ABC",
		OwnerUserID:       testUserID,
		Amount:            decimal.NewFromInt(1000),
		Category:          domain.CategoryFood,
		Status:            domain.StatusCompleted,
		Direction:         domain.DirectionSent,
		TransactionType:   domain.TypeInstant,
		Priority:          domain.PriorityNormal,
		ProcessingFee:     decimal.Zero,
		TransferReference: &ref,
	}
}

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestTransfer_Created() {
	suite.transfers.On("Transfer", mock.Anything, testUserID, mock.MatchedBy(func(r domain.TransferRequest) bool {
		return r.Recipient.CustomerIDOrURL == "CUST_BOB123456" &&
			r.Amount.Equal(decimal.NewFromInt(1000)) &&
			r.Priority == domain.PriorityNormal &&
			r.TransferType == domain.TypeInstant
	})).Return(sentEntry(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp handlers.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TXN_ABC", resp.Transaction.TransactionID)
	suite.Equal(domain.DirectionSent, resp.Transaction.Direction)
	suite.transfers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTransfer_ErrorMapping() {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"wrong pin", fmt.Errorf("%w: Invalid PIN", apperrors.ErrUnauthorized), http.StatusUnauthorized, "Invalid PIN"},
		{"unknown recipient", fmt.Errorf("%w: Recipient not found", apperrors.ErrNotFound), http.StatusNotFound, "Recipient not found"},
		{"self transfer", fmt.Errorf("%w: Cannot transfer to yourself", apperrors.ErrValidation), http.StatusBadRequest, "Cannot transfer to yourself"},
		{"insufficient funds", fmt.Errorf("%w: available 10, requested 1000", apperrors.ErrInsufficientFunds), http.StatusBadRequest, "Insufficient balance"},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.transfers.ExpectedCalls = nil
			suite.transfers.On("Transfer", mock.Anything, testUserID, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), nil)

			suite.Equal(tt.status, w.Code)
			suite.Equal(tt.message, suite.errorOf(w).Error)
		})
	}
}

func (suite *HandlerTestSuite) TestTransfer_InternalDetailsOnlyOutsideProduction() {
	suite.transfers.On("Transfer", mock.Anything, testUserID, mock.Anything).Return(nil, errors.New("connection refused"))

	w := suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), nil)
	suite.Equal("connection refused", suite.errorOf(w).Details)

	prod := *suite.cfg
	prod.IsProduction = true
	suite.router = suite.newRouter(&prod)
	w = suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Empty(suite.errorOf(w).Details)
}

func (suite *HandlerTestSuite) TestTransfer_InvalidBodyNeverReachesService() {
	bodies := map[string]map[string]any{
		"missing pin":      {"recipientPublicId": "CUST_B", "amount": 10, "category": "Food"},
		"bad category":     {"recipientPublicId": "CUST_B", "amount": 10, "category": "Gambling", "pin": "1234"},
		"below minimum":    {"recipientPublicId": "CUST_B", "amount": 0.001, "category": "Food", "pin": "1234"},
		"no recipient":     {"amount": 10, "category": "Food", "pin": "1234"},
		"pin with letters": {"recipientPublicId": "CUST_B", "amount": 10, "category": "Food", "pin": "12ab"},
	}
	for name, body := range bodies {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/api/v1/transfer", body, nil)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.transfers.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTransfer_RequiresToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfer", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.transfers.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTransfer_IdempotentReplay() {
	suite.transfers.On("Transfer", mock.Anything, testUserID, mock.Anything).Return(sentEntry(), nil).Once()
	headers := map[string]string{middleware.IdempotencyKeyHeader: "retry-1"}

	first := suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), headers)
	second := suite.do(http.MethodPost, "/api/v1/transfer", transferBody(), headers)

	suite.Equal(http.StatusCreated, first.Code)
	suite.Equal(http.StatusCreated, second.Code)
	suite.Equal("true", second.Header().Get("Idempotent-Replayed"))
	suite.JSONEq(first.Body.String(), second.Body.String())
	suite.transfers.AssertNumberOfCalls(suite.T(), "Transfer", 1)
}

func (suite *HandlerTestSuite) TestFindUser_IsPublic() {
	suite.resolver.On("Lookup", mock.Anything, "CUST_BOB123456").Return(&domain.RecipientProfile{
		User:                 domain.User{UserID: "bob", Name: "Bob", CustomerID: "CUST_BOB123456", PublicURL: "https://neobank.com/user/bob123"},
		PrimaryAccountNumber: "****4321",
	}, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/find-user/CUST_BOB123456", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PublicProfileResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("bob123", resp.PublicID)
	suite.Equal("****4321", resp.AccountNumber)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestRegister() {
	suite.users.On("Register", mock.Anything, mock.MatchedBy(func(r dto.RegisterRequest) bool {
		return r.Email == "new@example.com"
	})).Return(&domain.User{UserID: "u-new", Email: "new@example.com", CustomerID: "CUST_NEW"}, nil).Once()
	suite.users.On("Register", mock.Anything, mock.MatchedBy(func(r dto.RegisterRequest) bool {
		return r.Email == "dup@example.com"
	})).Return(nil, fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": "new@example.com", "password": "secret1", "confirmPassword": "secret1",
	}, nil)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": "dup@example.com", "password": "secret1", "confirmPassword": "secret1",
	}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("email is already registered", suite.errorOf(w).Error)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": "x@example.com", "password": "secret1", "confirmPassword": "other1",
	}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.tokens.On("Login", mock.Anything, dto.LoginRequest{Email: "a@example.com", Password: "secret1"}).
		Return(&dto.LoginResponse{Token: "jwt", User: dto.UserResponse{UserID: "a"}}, nil)
	suite.tokens.On("Login", mock.Anything, dto.LoginRequest{Email: "a@example.com", Password: "wrong"}).
		Return(nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized))

	w := suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@example.com", "password": "secret1"}, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"token":"jwt"`)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@example.com", "password": "wrong"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("invalid email or password", suite.errorOf(w).Error)
}

func (suite *HandlerTestSuite) TestSetPIN() {
	suite.users.On("SetPIN", mock.Anything, testUserID, "4321").Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/set-pin", map[string]string{"pin": "4321"}, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/set-pin", map[string]string{"pin": "43210"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.users.AssertNumberOfCalls(suite.T(), "SetPIN", 1)
}

func (suite *HandlerTestSuite) TestListTransactions_Defaults() {
	suite.txns.On("ListTransactions", mock.Anything, testUserID, dto.ListTransactionsParams{Page: 1, Limit: 20}).
		Return(&dto.ListTransactionsResponse{
			Transactions: []dto.TransactionResponse{},
			Pagination:   dto.PaginationInfo{Page: 1, Limit: 20},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions", nil, nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/transactions?limit=500", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.txns.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTransferAnalytics() {
	suite.txns.On("GetTransferAnalytics", mock.Anything, testUserID, "week").Return(&domain.TransferAnalytics{
		Period:            "week",
		TotalTransfers:    2,
		TotalSent:         decimal.NewFromInt(300),
		TotalReceived:     decimal.Zero,
		AverageAmount:     decimal.NewFromInt(150),
		PriorityBreakdown: map[domain.Priority]int{domain.PriorityNormal: 2},
		TransferTypes:     map[domain.TransactionType]int{domain.TypeInstant: 2},
	}, nil)

	w := suite.do(http.MethodGet, "/api/v1/transfer-analytics?period=week", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"total_transfers":2`)

	w = suite.do(http.MethodGet, "/api/v1/transfer-analytics?period=decade", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSimulateCredit_EmptyBody() {
	credit := &domain.Transaction{TransactionID: "TXN_CREDIT", Amount: decimal.RequireFromString("42.50"), Direction: domain.DirectionReceived}
	suite.txns.On("SimulateCredit", mock.Anything, testUserID, dto.SimulateCreditRequest{}).
		Return(credit, &domain.BalanceSummary{TotalBalance: decimal.RequireFromString("1042.50")}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulate-credit", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.SimulateCreditResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TXN_CREDIT", resp.Transaction.TransactionID)
	suite.True(decimal.RequireFromString("1042.5").Equal(resp.TotalBalance))
}

func (suite *HandlerTestSuite) TestBalanceAndAccounts() {
	accounts := []domain.Account{
		{AccountID: "a1", AccountNumber: "****1111", Balance: decimal.NewFromInt(700), IsActive: true},
		{AccountID: "a2", AccountNumber: "****2222", Balance: decimal.NewFromInt(300), IsActive: true},
	}
	suite.accounts.On("GetBalance", mock.Anything, testUserID).Return(&domain.BalanceSummary{
		Accounts: accounts, TotalBalance: decimal.NewFromInt(1000),
	}, nil)
	suite.accounts.On("ListActiveAccounts", mock.Anything, testUserID).Return(accounts, nil)

	w := suite.do(http.MethodGet, "/api/v1/balance", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	var balance dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.Len(balance.Accounts, 2)
	suite.True(decimal.NewFromInt(1000).Equal(balance.TotalBalance))

	w = suite.do(http.MethodGet, "/api/v1/accounts", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "****2222")
}

func (suite *HandlerTestSuite) TestLinkAccount() {
	suite.accounts.On("LinkAccount", mock.Anything, testUserID, dto.LinkAccountRequest{BankName: "HDFC", Institution: "HDFC Bank"}).
		Return(&domain.Account{AccountID: "new", BankName: "HDFC", Balance: decimal.NewFromInt(25000), IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/link", map[string]string{"bankName": "HDFC", "institution": "HDFC Bank"}, nil)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/accounts/link", map[string]string{"bankName": "HDFC"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestInsights_PassesAccountFilter() {
	suite.insights.On("GetInsights", mock.Anything, testUserID, "a1").Return(&domain.InsightReport{
		Period:        domain.InsightPeriod{ThisMonth: "2025-06", LastMonth: "2025-05"},
		CategorySpend: domain.CategorySpend{domain.CategoryFood: decimal.NewFromInt(100)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/insights?accountId=a1", nil, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"suggestions":[]`)
	suite.insights.AssertExpectations(suite.T())
}

func bulkBody(n int) map[string]any {
	transfers := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		transfers = append(transfers, map[string]any{
			"recipientPublicId": fmt.Sprintf("CUST_%d", i),
			"amount":            100,
		})
	}
	return map[string]any{"transfers": transfers, "pin": "1234", "priority": "high"}
}

func (suite *HandlerTestSuite) TestBulkTransfer_Created() {
	suite.transfers.On("BulkTransfer", mock.Anything, testUserID, mock.MatchedBy(func(r domain.BulkTransferRequest) bool {
		return len(r.Items) == 2 &&
			r.Items[1].Recipient.CustomerIDOrURL == "CUST_1" &&
			r.Priority == domain.PriorityHigh &&
			r.PIN == "1234"
	})).Return(&domain.BulkTransferResult{
		BatchID:        "BATCH_0123456789AB",
		TotalAmount:    decimal.NewFromInt(200),
		TotalTransfers: 2,
		Completed:      1,
		Failed:         1,
		Results: []domain.BulkTransferItemResult{
			{Recipient: "Bob", Amount: decimal.NewFromInt(100), Status: domain.BulkItemCompleted, TransactionID: "TXN_1"},
			{Recipient: "CUST_1", Amount: decimal.NewFromInt(100), Status: domain.BulkItemFailed, Error: "Recipient not found"},
		},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bulk-transfer", bulkBody(2), nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.BulkTransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Bulk transfer completed", resp.Message)
	suite.Equal("BATCH_0123456789AB", resp.BatchID)
	suite.Equal(2, resp.TotalTransfers)
	suite.Require().Len(resp.Results, 2)
	suite.Equal("TXN_1", resp.Results[0].TransactionID)
	suite.Equal("Recipient not found", resp.Results[1].Error)
	suite.transfers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBulkTransfer_RejectsBadBatches() {
	tooFew := bulkBody(1)
	tooMany := bulkBody(51)
	noPIN := bulkBody(2)
	delete(noPIN, "pin")
	badItem := bulkBody(2)
	badItem["transfers"].([]map[string]any)[0]["amount"] = 0

	for name, body := range map[string]map[string]any{
		"one transfer": tooFew,
		"51 transfers": tooMany,
		"missing pin":  noPIN,
		"zero amount":  badItem,
	} {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/api/v1/bulk-transfer", body, nil)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	suite.transfers.AssertNotCalled(suite.T(), "BulkTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBulkTransfer_InsufficientFunds() {
	suite.transfers.On("BulkTransfer", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("%w: Insufficient funds for bulk transfer", apperrors.ErrInsufficientFunds)).Once()

	w := suite.do(http.MethodPost, "/api/v1/bulk-transfer", bulkBody(3), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Insufficient balance", suite.errorOf(w).Error)
}
