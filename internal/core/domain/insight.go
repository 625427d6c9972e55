package domain

import "github.com/shopspring/decimal"

// InsightPriority orders insights in the final list.
type InsightPriority string

const (
	InsightHigh   InsightPriority = "high"
	InsightMedium InsightPriority = "medium"
	InsightLow    InsightPriority = "low"
)

// Rank returns 0 for high, 1 for medium and 2 for low.
func (p InsightPriority) Rank() int {
	switch p {
	case InsightHigh:
		return 0
	case InsightMedium:
		return 1
	}
	return 2
}

// InsightType identifies the rule that produced an insight.
type InsightType string

const (
	InsightOverspend     InsightType = "overspend"
	InsightTrendIncrease InsightType = "spending_trend_increase"
	InsightSavings       InsightType = "savings"
	InsightHighSpending  InsightType = "high_spending"
	InsightGoodBalance   InsightType = "good_balance"
	InsightLowBalance    InsightType = "low_balance"
	InsightTopCategory   InsightType = "top_category"
	InsightFood          InsightType = "food_insight"
	InsightShopping      InsightType = "shopping_insight"
	InsightTravel        InsightType = "travel_insight"
	InsightBillSpike     InsightType = "bill_spike"
	InsightEOMSummary    InsightType = "eom_summary"
	InsightUnusual       InsightType = "unusual_activity"
)

// InsightRecord is one generated suggestion.
type InsightRecord struct {
	Type     InsightType     `json:"type"`
	Category Category        `json:"category"`
	Emoji    string          `json:"emoji"`
	Message  string          `json:"message"`
	Detail   string          `json:"detail"`
	Priority InsightPriority `json:"priority"`

	OverspendAmount  *decimal.Decimal `json:"overspendAmount,omitempty"`
	OverspendPercent *decimal.Decimal `json:"overspendPercent,omitempty"`
	SavedAmount      *decimal.Decimal `json:"savedAmount,omitempty"`
	Percent          *decimal.Decimal `json:"percent,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
}

// CategorySpend maps a category to the amount spent on it.
type CategorySpend map[Category]decimal.Decimal

// Total sums every category.
func (c CategorySpend) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range c {
		total = total.Add(v)
	}
	return total
}

// SpendingSummary is the monthly view the insight rules work from.
type SpendingSummary struct {
	CurrentIncome     decimal.Decimal
	CurrentSpending   CategorySpend
	LastMonthSpending CategorySpend
	EstimatedBalance  decimal.Decimal
	CategoryLimits    map[Category]decimal.Decimal
}

// RecurringPayment is a description seen repeatedly among this month's debits.
type RecurringPayment struct {
	Description string
	Count       int
}

// InsightPeriod names the two months compared, as YYYY-MM.
type InsightPeriod struct {
	ThisMonth string
	LastMonth string
}

// InsightReport is the full payload of the insights endpoint.
type InsightReport struct {
	Period            InsightPeriod
	CategorySpend     CategorySpend
	CategorySpendLast CategorySpend
	Surplus           decimal.Decimal
	Recurring         []RecurringPayment
	Suggestions       []InsightRecord
	Summary           SpendingSummary
	TotalBalance      decimal.Decimal
}
