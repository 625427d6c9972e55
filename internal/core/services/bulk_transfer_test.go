package services_test

import (
	"fmt"
	"regexp"

	"github.com/SscSPs/neobank_backend/internal/apperrors"
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func bulkItem(recipient string, amount int64) domain.BulkTransferItem {
	return domain.BulkTransferItem{
		Recipient: domain.RecipientIdentifiers{CustomerIDOrURL: recipient},
		Amount:    decimal.NewFromInt(amount),
	}
}

func (suite *TransferServiceTestSuite) bulkRequest(items ...domain.BulkTransferItem) domain.BulkTransferRequest {
	return domain.BulkTransferRequest{Items: items, PIN: "1234"}
}

func (suite *TransferServiceTestSuite) expectBulkPrelude(accounts []domain.Account) {
	suite.userSvc.On("FindUserByID", suite.ctx, "sender").Return(suite.sender, nil)
	suite.userSvc.On("VerifyPIN", suite.ctx, "sender", "1234").Return(true, nil)
	suite.accountRepo.On("ListActiveAccountsByOwner", suite.ctx, "sender").Return(accounts, nil)
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_PartialFailure() {
	carol := &domain.User{UserID: "carol", Name: "Carol", CustomerID: "CUST_C"}
	suite.expectBulkPrelude(suite.senderAccounts(10000))
	suite.resolver.On("Resolve", suite.ctx, domain.RecipientIdentifiers{CustomerIDOrURL: "CUST_B"}).Return(suite.recipient, nil)
	suite.resolver.On("Resolve", suite.ctx, domain.RecipientIdentifiers{CustomerIDOrURL: "CUST_X"}).
		Return(nil, fmt.Errorf("%w: Recipient not found", apperrors.ErrNotFound))
	suite.resolver.On("Resolve", suite.ctx, domain.RecipientIdentifiers{CustomerIDOrURL: "CUST_C"}).Return(carol, nil)
	var postings []domain.TransferPosting
	suite.ledger.On("SaveTransfer", suite.ctx, mock.Anything).
		Run(func(args mock.Arguments) { postings = append(postings, args.Get(1).(domain.TransferPosting)) }).
		Return(&domain.TransferReceipt{}, nil)

	req := suite.bulkRequest(bulkItem("CUST_B", 100), bulkItem("CUST_X", 200), bulkItem("CUST_C", 300))
	req.Priority = domain.PriorityHigh
	result, err := suite.service.BulkTransfer(suite.ctx, "sender", req)

	suite.Require().NoError(err)
	suite.Regexp(regexp.MustCompile(`^BATCH_[0-9A-Z]{12}$`), result.BatchID)
	suite.True(decimal.NewFromInt(600).Equal(result.TotalAmount))
	suite.Equal(3, result.TotalTransfers)
	suite.Equal(2, result.Completed)
	suite.Equal(1, result.Failed)

	suite.Require().Len(result.Results, 3)
	suite.Equal(domain.BulkItemCompleted, result.Results[0].Status)
	suite.Equal("Bob", result.Results[0].Recipient)
	suite.NotEmpty(result.Results[0].TransactionID)
	suite.Equal(domain.BulkItemFailed, result.Results[1].Status)
	suite.Equal("CUST_X", result.Results[1].Recipient)
	suite.Equal("Recipient not found", result.Results[1].Error)
	suite.Empty(result.Results[1].TransactionID)
	suite.Equal(domain.BulkItemCompleted, result.Results[2].Status)

	suite.Require().Len(postings, 2)
	for _, p := range postings {
		suite.Equal(result.BatchID, *p.SenderEntry.BatchID)
		suite.Equal(result.BatchID, *p.RecipientEntry.BatchID)
		suite.Equal(domain.PriorityHigh, p.SenderEntry.Priority)
		suite.Equal(domain.TypeInstant, p.SenderEntry.TransactionType)
		suite.Equal(domain.CategoryTransfers, p.SenderEntry.Category)
		suite.Equal("Bulk transfer", p.SenderEntry.Description)
	}
	suite.True(decimal.NewFromInt(1).Equal(postings[0].SenderEntry.ProcessingFee), "high priority fee is 1%")
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_SelfAndLedgerFailuresStayPerItem() {
	suite.expectBulkPrelude(suite.senderAccounts(10000))
	suite.resolver.On("Resolve", suite.ctx, domain.RecipientIdentifiers{CustomerIDOrURL: "CUST_A"}).Return(suite.sender, nil)
	suite.resolver.On("Resolve", suite.ctx, domain.RecipientIdentifiers{CustomerIDOrURL: "CUST_B"}).Return(suite.recipient, nil)
	suite.ledger.On("SaveTransfer", suite.ctx, mock.Anything).
		Return(nil, fmt.Errorf("%w: combined balance no longer covers the transfer", apperrors.ErrInsufficientFunds))

	result, err := suite.service.BulkTransfer(suite.ctx, "sender", suite.bulkRequest(bulkItem("CUST_A", 10), bulkItem("CUST_B", 20)))

	suite.Require().NoError(err)
	suite.Equal(0, result.Completed)
	suite.Equal(2, result.Failed)
	suite.Equal("Cannot transfer to yourself", result.Results[0].Error)
	suite.Equal("Insufficient balance", result.Results[1].Error)
	suite.ledger.AssertNumberOfCalls(suite.T(), "SaveTransfer", 1)
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_AggregateFundsCheck() {
	suite.expectBulkPrelude(suite.senderAccounts(300, 200))

	_, err := suite.service.BulkTransfer(suite.ctx, "sender", suite.bulkRequest(bulkItem("CUST_B", 250), bulkItem("CUST_C", 251)))

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Contains(err.Error(), "Insufficient funds for bulk transfer")
	suite.resolver.AssertNotCalled(suite.T(), "Resolve", mock.Anything, mock.Anything)
	suite.ledger.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_WrongPINRejectsBatch() {
	suite.userSvc.On("FindUserByID", suite.ctx, "sender").Return(suite.sender, nil)
	suite.userSvc.On("VerifyPIN", suite.ctx, "sender", "1234").Return(false, nil)

	_, err := suite.service.BulkTransfer(suite.ctx, "sender", suite.bulkRequest(bulkItem("CUST_B", 10), bulkItem("CUST_C", 10)))

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.resolver.AssertNotCalled(suite.T(), "Resolve", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_NoActiveAccounts() {
	suite.expectBulkPrelude([]domain.Account{})

	_, err := suite.service.BulkTransfer(suite.ctx, "sender", suite.bulkRequest(bulkItem("CUST_B", 10), bulkItem("CUST_C", 10)))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "No active bank accounts found")
}

func (suite *TransferServiceTestSuite) TestBulkTransfer_InvalidBatches() {
	many := make([]domain.BulkTransferItem, domain.MaxBulkTransfers+1)
	for i := range many {
		many[i] = bulkItem("CUST_B", 1)
	}
	tests := []struct {
		name string
		req  domain.BulkTransferRequest
	}{
		{"single item", suite.bulkRequest(bulkItem("CUST_B", 10))},
		{"too many items", suite.bulkRequest(many...)},
		{"zero amount item", suite.bulkRequest(bulkItem("CUST_B", 10), bulkItem("CUST_C", 0))},
		{"blank recipient", suite.bulkRequest(bulkItem("CUST_B", 10), bulkItem("  ", 5))},
		{"bad priority", domain.BulkTransferRequest{Items: []domain.BulkTransferItem{bulkItem("CUST_B", 1), bulkItem("CUST_C", 1)}, PIN: "1234", Priority: "asap"}},
		{"bad pin", domain.BulkTransferRequest{Items: []domain.BulkTransferItem{bulkItem("CUST_B", 1), bulkItem("CUST_C", 1)}, PIN: "12"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.BulkTransfer(suite.ctx, "sender", tt.req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.userSvc.AssertNotCalled(suite.T(), "VerifyPIN", mock.Anything, mock.Anything, mock.Anything)
}
