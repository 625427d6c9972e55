package dto_test

import (
	"testing"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToInsightsResponse_RemainingBalance(t *testing.T) {
	tests := []struct {
		name          string
		balance       int64
		spent         int64
		wantRemaining int64
		wantUsage     string
	}{
		{"within balance", 10000, 2500, 7500, "25"},
		{"overspent goes negative", 1000, 1600, -600, "160"},
		{"no balance", 0, 300, -300, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &domain.InsightReport{
				TotalBalance: decimal.NewFromInt(tt.balance),
				Summary: domain.SpendingSummary{
					CurrentSpending: domain.CategorySpend{domain.CategoryFood: decimal.NewFromInt(tt.spent)},
				},
			}

			got := dto.ToInsightsResponse(report).SpendingSummary

			assert.True(t, decimal.NewFromInt(tt.wantRemaining).Equal(got.RemainingBalance), "remaining %s", got.RemainingBalance)
			assert.True(t, decimal.RequireFromString(tt.wantUsage).Equal(got.BalanceUsagePercentage), "usage %s", got.BalanceUsagePercentage)
			assert.NotNil(t, dto.ToInsightsResponse(report).Suggestions)
		})
	}
}
