package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/SscSPs/neobank_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// MaxInsights caps the number of suggestions returned.
const MaxInsights = 5

// Labels for insights that are not about a single spending category.
const (
	categoryGeneral domain.Category = "General"
	categoryBalance domain.Category = "Balance"
)

var (
	hundred = decimal.NewFromInt(100)

	trendIncreasePct   = decimal.NewFromInt(20)
	savingsDecreasePct = decimal.NewFromInt(15)
	savingsMinAmount   = decimal.NewFromInt(500)
	highSpendingPct    = decimal.NewFromInt(80)
	goodBalancePct     = decimal.NewFromInt(30)
	lowBalancePct      = decimal.NewFromInt(20)
	billSpikeAmount    = decimal.NewFromInt(800)
	unusualMultiplier  = decimal.RequireFromString("2.2")
	unusualFloor       = decimal.NewFromInt(3000)
)

// Month-over-month increase (percent) above which a category tip is shown.
var categoryTipThresholds = []struct {
	category  domain.Category
	insight   domain.InsightType
	threshold decimal.Decimal
}{
	{domain.CategoryFood, domain.InsightFood, decimal.NewFromInt(15)},
	{domain.CategoryShopping, domain.InsightShopping, decimal.NewFromInt(25)},
	{domain.CategoryTravel, domain.InsightTravel, decimal.NewFromInt(100)},
}

// Engine generates spending insights. The clock only decides which calendar
// month is "this month".
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type snapshot struct {
	thisMonth month
	lastMonth month
	current   domain.CategorySpend
	previous  domain.CategorySpend
	income    decimal.Decimal
	baseline  decimal.Decimal
}

func (e *Engine) snapshot(txns []domain.Transaction, balance decimal.Decimal) snapshot {
	this := monthOf(e.now())
	last := this.previous()
	current := monthlySpend(txns, this)
	return snapshot{
		thisMonth: this,
		lastMonth: last,
		current:   current,
		previous:  monthlySpend(txns, last),
		income:    monthlyIncome(txns, this),
		baseline:  estimateBaseline(txns, balance, current),
	}
}

// Summarize returns the monthly figures the insight rules are computed from.
func (e *Engine) Summarize(txns []domain.Transaction, balance decimal.Decimal) domain.SpendingSummary {
	s := e.snapshot(txns, balance)
	return s.summary()
}

func (s snapshot) summary() domain.SpendingSummary {
	return domain.SpendingSummary{
		CurrentIncome:     s.income,
		CurrentSpending:   s.current,
		LastMonthSpending: s.previous,
		EstimatedBalance:  s.baseline,
		CategoryLimits:    LimitsByCategory(),
	}
}

// Report bundles suggestions with the month's spend, surplus and recurring payments.
func (e *Engine) Report(txns []domain.Transaction, balance decimal.Decimal) domain.InsightReport {
	s := e.snapshot(txns, balance)
	surplus := s.income.Sub(s.current.Total())
	if surplus.IsNegative() {
		surplus = decimal.Zero
	}
	return domain.InsightReport{
		Period:            domain.InsightPeriod{ThisMonth: s.thisMonth.label(), LastMonth: s.lastMonth.label()},
		CategorySpend:     s.current,
		CategorySpendLast: s.previous,
		Surplus:           surplus,
		Recurring:         recurringPayments(txns, s.thisMonth),
		Suggestions:       s.generate(),
		Summary:           s.summary(),
		TotalBalance:      balance,
	}
}

// Generate returns at most MaxInsights suggestions, highest priority first.
// Equal priorities keep the order the rules fired in.
func (e *Engine) Generate(txns []domain.Transaction, balance decimal.Decimal) []domain.InsightRecord {
	return e.snapshot(txns, balance).generate()
}

func (s snapshot) generate() []domain.InsightRecord {
	var out []domain.InsightRecord
	out = append(out, s.categoryInsights()...)
	out = append(out, s.balanceInsights()...)
	if top, ok := s.topCategory(); ok {
		out = append(out, top)
	}
	out = append(out, s.categoryTips()...)
	if spike, ok := s.billSpike(); ok {
		out = append(out, spike)
	}
	if eom, ok := s.monthSummary(); ok {
		out = append(out, eom)
	}
	out = append(out, s.unusualActivity()...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

func (s snapshot) categoryInsights() []domain.InsightRecord {
	var out []domain.InsightRecord
	for _, limit := range DefaultLimits {
		c := limit.Category
		cur := s.current[c]
		last := s.previous[c]
		if !cur.IsPositive() {
			continue
		}
		name := strings.ToLower(string(c))

		if s.baseline.IsPositive() {
			limitAmount := s.baseline.Mul(limit.Percent).Div(hundred)
			if cur.GreaterThan(limitAmount) {
				over := cur.Sub(limitAmount)
				overPct := percentOf(over, limitAmount)
				out = append(out, domain.InsightRecord{
					Type:     domain.InsightOverspend,
					Category: c,
					Emoji:    Emoji(c),
					Message:  fmt.Sprintf("You are overspending on %s this month %s", name, Emoji(c)),
					Detail: fmt.Sprintf("You spent %s (%s%% of balance) vs limit of %s (%s%%)",
						utils.FormatRupees(cur), utils.FormatWithPrecision(percentOf(cur, s.baseline), 1),
						utils.FormatRupees(limitAmount), limit.Percent.String()),
					Priority:         domain.InsightHigh,
					OverspendAmount:  &over,
					OverspendPercent: &overPct,
				})
			}
		}

		if last.IsPositive() && cur.GreaterThan(last) {
			increase := percentOf(cur.Sub(last), last)
			if increase.GreaterThanOrEqual(trendIncreasePct) {
				out = append(out, domain.InsightRecord{
					Type:     domain.InsightTrendIncrease,
					Category: c,
					Emoji:    Emoji(c),
					Message:  fmt.Sprintf("You've spent %s%% more on %s this month compared to last month", increase.StringFixed(0), name),
					Detail: fmt.Sprintf("This month: %s • Last month: %s. Consider reviewing for deals or alternatives.",
						utils.FormatRupees(cur), utils.FormatRupees(last)),
					Priority: domain.InsightMedium,
					Percent:  &increase,
				})
			}
		}

		if last.IsPositive() && cur.LessThan(last) {
			saved := last.Sub(cur)
			decrease := percentOf(saved, last)
			if decrease.GreaterThan(savingsDecreasePct) && saved.GreaterThan(savingsMinAmount) {
				out = append(out, domain.InsightRecord{
					Type:        domain.InsightSavings,
					Category:    c,
					Emoji:       "🎉",
					Message:     fmt.Sprintf("Great job! You saved %s on %s this month", utils.FormatRupees(saved), name),
					Detail:      fmt.Sprintf("That's %s%% less than last month", decrease.StringFixed(0)),
					Priority:    domain.InsightLow,
					SavedAmount: &saved,
				})
			}
		}
	}
	return out
}

func (s snapshot) balanceInsights() []domain.InsightRecord {
	if !s.baseline.IsPositive() {
		return nil
	}
	var out []domain.InsightRecord
	total := s.current.Total()
	ratio := percentOf(total, s.baseline)
	if ratio.GreaterThan(highSpendingPct) {
		out = append(out, domain.InsightRecord{
			Type:     domain.InsightHighSpending,
			Category: categoryGeneral,
			Emoji:    "⚠️",
			Message:  fmt.Sprintf("You spent %s%% of your balance this month ⚠️", ratio.StringFixed(0)),
			Detail:   "Try to keep spending below 70% to maintain healthy balance",
			Priority: domain.InsightHigh,
			Percent:  &ratio,
		})
	}

	remaining := s.baseline.Sub(total)
	remainingPct := percentOf(remaining, s.baseline)
	switch {
	case remainingPct.GreaterThan(goodBalancePct):
		out = append(out, domain.InsightRecord{
			Type:     domain.InsightGoodBalance,
			Category: categoryBalance,
			Emoji:    "🎉",
			Message:  fmt.Sprintf("You maintained %s%% of your balance this month 🎉", remainingPct.StringFixed(0)),
			Detail:   fmt.Sprintf("Remaining balance: %s", utils.FormatRupees(remaining)),
			Priority: domain.InsightLow,
			Percent:  &remainingPct,
			Amount:   &remaining,
		})
	case remainingPct.IsPositive() && remainingPct.LessThan(lowBalancePct):
		out = append(out, domain.InsightRecord{
			Type:     domain.InsightLowBalance,
			Category: categoryBalance,
			Emoji:    "💡",
			Message:  "Your balance is running low, try to cut down on spending",
			Detail:   fmt.Sprintf("Only %s%% of your balance remaining (%s)", remainingPct.StringFixed(0), utils.FormatRupees(remaining)),
			Priority: domain.InsightMedium,
			Percent:  &remainingPct,
			Amount:   &remaining,
		})
	}
	return out
}

func (s snapshot) topCategory() (domain.InsightRecord, bool) {
	ranked := rankCategories(s.current)
	if len(ranked) == 0 {
		return domain.InsightRecord{}, false
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	top := ranked[0]
	share := percentOf(top.amount, s.current.Total())

	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, fmt.Sprintf("%s (%s)", r.category, utils.FormatRupees(r.amount)))
	}
	amount := top.amount
	return domain.InsightRecord{
		Type:     domain.InsightTopCategory,
		Category: top.category,
		Emoji:    "📊",
		Message: fmt.Sprintf("%s was your top expense this month, totaling %s (%s%% of spending)",
			top.category, utils.FormatRupees(top.amount), share.StringFixed(0)),
		Detail:   "Top 3: " + strings.Join(parts, ", "),
		Priority: domain.InsightLow,
		Percent:  &share,
		Amount:   &amount,
	}, true
}

func (s snapshot) categoryTips() []domain.InsightRecord {
	var out []domain.InsightRecord
	for _, tip := range categoryTipThresholds {
		cur := s.current[tip.category]
		last := s.previous[tip.category]
		if !cur.IsPositive() || !last.IsPositive() {
			continue
		}
		increase := percentOf(cur.Sub(last), last)
		if !increase.GreaterThan(tip.threshold) {
			continue
		}
		rec := domain.InsightRecord{
			Type:     tip.insight,
			Category: tip.category,
			Emoji:    Emoji(tip.category),
			Priority: domain.InsightMedium,
			Percent:  &increase,
		}
		switch tip.category {
		case domain.CategoryFood:
			rec.Message = fmt.Sprintf("Your food expenses increased by %s%% compared to last month", increase.StringFixed(0))
			rec.Detail = "Consider cooking at home more often to save money"
		case domain.CategoryShopping:
			rec.Message = fmt.Sprintf("Your shopping expenses are %s%% higher than last month", increase.StringFixed(0))
			rec.Detail = "Try to reduce impulse purchases and stick to a shopping list"
		case domain.CategoryTravel:
			rec.Message = fmt.Sprintf("Your travel expenses are %s× last month 🚕", cur.Div(last).StringFixed(1))
			rec.Detail = "Consider using public transport or carpooling to save money"
		}
		out = append(out, rec)
	}
	return out
}

func (s snapshot) billSpike() (domain.InsightRecord, bool) {
	now := s.current[domain.CategoryBills]
	prev := s.previous[domain.CategoryBills]
	if !prev.IsPositive() || !now.GreaterThan(prev) {
		return domain.InsightRecord{}, false
	}
	delta := now.Sub(prev)
	if delta.LessThan(billSpikeAmount) {
		return domain.InsightRecord{}, false
	}
	return domain.InsightRecord{
		Type:     domain.InsightBillSpike,
		Category: domain.CategoryBills,
		Emoji:    "💡",
		Message:  fmt.Sprintf("Your bills increased by %s this month", utils.FormatRupees(delta)),
		Detail: fmt.Sprintf("This month: %s • Last month: %s. Consider checking usage or plan changes.",
			utils.FormatRupees(now), utils.FormatRupees(prev)),
		Priority: domain.InsightMedium,
		Amount:   &delta,
	}, true
}

func (s snapshot) monthSummary() (domain.InsightRecord, bool) {
	total := s.current.Total()
	lastTotal := s.previous.Total()
	if total.IsZero() && lastTotal.IsZero() {
		return domain.InsightRecord{}, false
	}

	diff := total.Sub(lastTotal)
	msg := fmt.Sprintf("This month you spent %s", utils.FormatRupees(total))
	switch {
	case diff.IsNegative():
		msg += fmt.Sprintf(", %s less than last month", utils.FormatRupees(diff.Abs()))
	case diff.IsPositive():
		msg += fmt.Sprintf(", %s more than last month", utils.FormatRupees(diff))
	}
	return domain.InsightRecord{
		Type:     domain.InsightEOMSummary,
		Category: categoryGeneral,
		Emoji:    "🗓️",
		Message:  msg,
		Detail:   fmt.Sprintf("Last month spending: %s. Keep tracking your progress.", utils.FormatRupees(lastTotal)),
		Priority: domain.InsightLow,
		Amount:   &diff,
	}, true
}

func (s snapshot) unusualActivity() []domain.InsightRecord {
	var out []domain.InsightRecord
	for _, limit := range DefaultLimits {
		c := limit.Category
		now := s.current[c]
		prev := s.previous[c]
		if !prev.IsPositive() {
			continue
		}
		if now.LessThan(prev.Mul(unusualMultiplier)) || now.LessThan(unusualFloor) {
			continue
		}
		amount := now
		out = append(out, domain.InsightRecord{
			Type:     domain.InsightUnusual,
			Category: c,
			Emoji:    "⚠️",
			Message: fmt.Sprintf("Unusual %s activity: %s vs usual ~%s",
				strings.ToLower(string(c)), utils.FormatRupees(now), utils.FormatRupees(prev)),
			Detail:   "This is significantly higher than last month. Did you have a special event or travel?",
			Priority: domain.InsightHigh,
			Amount:   &amount,
		})
	}
	return out
}

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
