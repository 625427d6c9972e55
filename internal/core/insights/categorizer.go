// Package insights turns a user's ledger entries into spending categories,
// monthly summaries and budget suggestions. Nothing here performs I/O.
package insights

import (
	"strings"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
)

var incomeKeywords = []string{"salary", "income", "credit", "deposit", "bonus", "refund"}

type keywordRule struct {
	category domain.Category
	keywords []string
}

// Keyword sets overlap ("mobile" is a bill, "gas" is fuel), so the first
// matching rule wins.
var keywordRules = []keywordRule{
	{domain.CategoryFood, []string{"restaurant", "food", "dining", "swiggy", "zomato", "uber eats", "pizza", "cafe", "coffee", "delivery", "kitchen", "dine"}},
	{domain.CategoryShopping, []string{"amazon", "flipkart", "myntra", "store", "shopping", "mart", "buy", "purchase", "mall", "outlet"}},
	{domain.CategoryTravel, []string{"uber", "ola", "taxi", "flight", "train", "bus", "travel", "transport", "metro", "auto", "cab", "petrol", "diesel", "fuel", "gas"}},
	{domain.CategoryBills, []string{"bill", "electric", "water", "internet", "mobile", "postpaid", "rent", "emi", "utility", "broadband"}},
	{domain.CategoryEntertainment, []string{"netflix", "spotify", "hotstar", "zee", "movie", "ticket", "entertainment", "game", "ott", "subscription"}},
	{domain.CategoryHealth, []string{"pharmacy", "medical", "hospital", "clinic", "health", "doctor", "medicine", "apollo", "medplus"}},
	{domain.CategoryEducation, []string{"school", "college", "education", "course", "tuition", "book", "learning", "university"}},
}

// Categorize assigns a category to a transaction. An explicit category other
// than Other is returned unchanged, so Categorize(t with Categorize(t)) is stable.
func Categorize(txn domain.Transaction) domain.Category {
	if txn.Category.IsExplicit() {
		return domain.Category(strings.TrimSpace(string(txn.Category)))
	}

	description := strings.ToLower(txn.Description)

	if txn.Direction == domain.DirectionReceived || containsAny(description, incomeKeywords) {
		return domain.CategoryIncome
	}

	for _, rule := range keywordRules {
		if containsAny(description, rule.keywords) {
			return rule.category
		}
	}
	return domain.CategoryOther
}

// spendCategory is the category a sent entry counts toward in monthly totals.
func spendCategory(txn domain.Transaction) domain.Category {
	if txn.Category.IsExplicit() {
		return domain.Category(strings.TrimSpace(string(txn.Category)))
	}
	return Categorize(txn)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
