package dto

import (
	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InsightsParams optionally restricts insights to one source account.
type InsightsParams struct {
	AccountID string `form:"accountId"`
}

// InsightPeriodResponse names the compared months.
type InsightPeriodResponse struct {
	ThisMonth string `json:"this_month"`
	LastMonth string `json:"last_month"`
}

// RecurringPaymentResponse is a repeated debit description.
type RecurringPaymentResponse struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// SpendingSummaryResponse is the dashboard block of the insights payload.
type SpendingSummaryResponse struct {
	TotalBalance           decimal.Decimal                     `json:"total_balance"`
	EstimatedBalance       decimal.Decimal                     `json:"estimated_balance"`
	CurrentIncome          decimal.Decimal                     `json:"current_income"`
	CurrentSpending        decimal.Decimal                     `json:"current_spending"`
	LastMonthSpending      decimal.Decimal                     `json:"last_month_spending"`
	RemainingBalance       decimal.Decimal                     `json:"remaining_balance"`
	BalanceUsagePercentage decimal.Decimal                     `json:"balance_usage_percentage"`
	CategoryLimits         map[domain.Category]decimal.Decimal `json:"category_limits"`
}

// InsightsResponse is the body of GET /insights.
type InsightsResponse struct {
	Period            InsightPeriodResponse      `json:"period"`
	CategorySpend     domain.CategorySpend       `json:"category_spend"`
	CategorySpendLast domain.CategorySpend       `json:"category_spend_last"`
	SurplusThisMonth  decimal.Decimal            `json:"surplus_this_month"`
	Recurring         []RecurringPaymentResponse `json:"recurring"`
	Suggestions       []domain.InsightRecord     `json:"suggestions"`
	SpendingSummary   SpendingSummaryResponse    `json:"spending_summary"`
}

// ToInsightsResponse converts an InsightReport.
func ToInsightsResponse(r *domain.InsightReport) InsightsResponse {
	recurring := make([]RecurringPaymentResponse, len(r.Recurring))
	for i, p := range r.Recurring {
		recurring[i] = RecurringPaymentResponse{Description: p.Description, Count: p.Count}
	}
	suggestions := r.Suggestions
	if suggestions == nil {
		suggestions = []domain.InsightRecord{}
	}

	spent := r.Summary.CurrentSpending.Total()
	// Goes negative once the month's spend exceeds the current balance.
	remaining := r.TotalBalance.Sub(spent)
	usage := decimal.Zero
	if r.TotalBalance.IsPositive() {
		usage = spent.Div(r.TotalBalance).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return InsightsResponse{
		Period:            InsightPeriodResponse{ThisMonth: r.Period.ThisMonth, LastMonth: r.Period.LastMonth},
		CategorySpend:     r.CategorySpend,
		CategorySpendLast: r.CategorySpendLast,
		SurplusThisMonth:  r.Surplus,
		Recurring:         recurring,
		Suggestions:       suggestions,
		SpendingSummary: SpendingSummaryResponse{
			TotalBalance:           r.TotalBalance,
			EstimatedBalance:       r.Summary.EstimatedBalance,
			CurrentIncome:          r.Summary.CurrentIncome,
			CurrentSpending:        spent,
			LastMonthSpending:      r.Summary.LastMonthSpending.Total(),
			RemainingBalance:       remaining,
			BalanceUsagePercentage: usage,
			CategoryLimits:         r.Summary.CategoryLimits,
		},
	}
}
