package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryLimit is a category's budget as a percentage of the balance baseline.
type CategoryLimit struct {
	Category domain.Category
	Percent  decimal.Decimal
}

// DefaultLimits also fixes the order in which per-category rules run.
var DefaultLimits = []CategoryLimit{
	{domain.CategoryFood, decimal.NewFromInt(25)},
	{domain.CategoryShopping, decimal.NewFromInt(15)},
	{domain.CategoryTravel, decimal.NewFromInt(10)},
	{domain.CategoryBills, decimal.NewFromInt(20)},
	{domain.CategoryEntertainment, decimal.NewFromInt(8)},
	{domain.CategoryHealth, decimal.NewFromInt(5)},
	{domain.CategoryEducation, decimal.NewFromInt(10)},
	{domain.CategoryOther, decimal.NewFromInt(10)},
}

var categoryEmojis = map[domain.Category]string{
	domain.CategoryFood:          "🍔",
	domain.CategoryShopping:      "🛒",
	domain.CategoryTravel:        "🚌",
	domain.CategoryBills:         "💡",
	domain.CategoryEntertainment: "🎭",
	domain.CategoryHealth:        "🏥",
	domain.CategoryEducation:     "📚",
	domain.CategoryIncome:        "💰",
	domain.CategoryOther:         "💳",
}

// Emoji returns the icon shown next to a category.
func Emoji(c domain.Category) string {
	if e, ok := categoryEmojis[c]; ok {
		return e
	}
	return categoryEmojis[domain.CategoryOther]
}

// LimitsByCategory returns DefaultLimits as a map.
func LimitsByCategory() map[domain.Category]decimal.Decimal {
	out := make(map[domain.Category]decimal.Decimal, len(DefaultLimits))
	for _, l := range DefaultLimits {
		out[l.Category] = l.Percent
	}
	return out
}

const recentCreditsForBaseline = 5

var spendMultiplierForBaseline = decimal.RequireFromString("1.5")

type month struct {
	start time.Time
	end   time.Time
}

func monthOf(t time.Time) month {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return month{start: start, end: start.AddDate(0, 1, 0)}
}

func (m month) previous() month {
	start := m.start.AddDate(0, -1, 0)
	return month{start: start, end: m.start}
}

func (m month) contains(t time.Time) bool {
	t = t.In(m.start.Location())
	return !t.Before(m.start) && t.Before(m.end)
}

func (m month) label() string {
	return m.start.Format("2006-01")
}

// monthlySpend sums sent entries in m by category.
func monthlySpend(txns []domain.Transaction, m month) domain.CategorySpend {
	spend := domain.CategorySpend{}
	for _, t := range txns {
		if t.Direction != domain.DirectionSent || !m.contains(t.CreatedAt) {
			continue
		}
		c := spendCategory(t)
		spend[c] = spend[c].Add(t.Amount)
	}
	return spend
}

// monthlyIncome sums received entries in m.
func monthlyIncome(txns []domain.Transaction, m month) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Direction == domain.DirectionReceived && m.contains(t.CreatedAt) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// estimateBaseline picks the balance the category limits are measured against.
func estimateBaseline(txns []domain.Transaction, balance decimal.Decimal, currentSpend domain.CategorySpend) decimal.Decimal {
	if balance.IsPositive() {
		return balance
	}

	credits := make([]domain.Transaction, 0)
	for _, t := range txns {
		if t.Direction == domain.DirectionReceived {
			credits = append(credits, t)
		}
	}
	sort.SliceStable(credits, func(i, j int) bool {
		return credits[i].CreatedAt.After(credits[j].CreatedAt)
	})
	if len(credits) > recentCreditsForBaseline {
		credits = credits[:recentCreditsForBaseline]
	}
	recent := decimal.Zero
	for _, t := range credits {
		recent = recent.Add(t.Amount)
	}
	if recent.IsPositive() {
		return recent
	}

	return currentSpend.Total().Mul(spendMultiplierForBaseline)
}

// recurringPayments finds sent descriptions seen at least twice in m,
// compared case-insensitively. Most frequent first.
func recurringPayments(txns []domain.Transaction, m month) []domain.RecurringPayment {
	counts := map[string]int{}
	for _, t := range txns {
		if t.Direction != domain.DirectionSent || !m.contains(t.CreatedAt) {
			continue
		}
		desc := strings.ToLower(strings.TrimSpace(t.Description))
		if desc == "" {
			continue
		}
		counts[desc]++
	}

	out := make([]domain.RecurringPayment, 0)
	for desc, n := range counts {
		if n >= 2 {
			out = append(out, domain.RecurringPayment{Description: desc, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Description < out[j].Description
	})
	return out
}

type rankedCategory struct {
	category domain.Category
	amount   decimal.Decimal
}

// rankCategories sorts by amount descending; ties fall back to name so the
// order does not depend on map iteration.
func rankCategories(spend domain.CategorySpend) []rankedCategory {
	out := make([]rankedCategory, 0, len(spend))
	for c, amt := range spend {
		out = append(out, rankedCategory{category: c, amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].amount.Cmp(out[j].amount); cmp != 0 {
			return cmp > 0
		}
		return out[i].category < out[j].category
	})
	return out
}
