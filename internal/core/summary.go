package core

import "sort"

// shareThreshold is the percentage of total spend above which a category
// gets a cautionary tip instead of the reassuring message.
const shareThreshold = 50.0

// categoryTips maps each category to its advisory text. Categories missing
// from the table fall back to genericTip.
var categoryTips = map[Category]string{
	CategoryFood:          "Try cooking at home, meal prep, or reduce takeout orders.",
	CategoryTransport:     "Use public transport, carpool, or walk/cycle for short distances.",
	CategoryEntertainment: "Switch to free/low-cost activities or reduce streaming subscriptions.",
	CategoryHousing:       "Monitor utility usage, save energy, and avoid unnecessary expenses.",
	CategoryHealth:        "Look for affordable healthcare options, generic medicines, and preventive care.",
	CategoryOther:         "Track miscellaneous spending and prioritize essentials over luxuries.",
}

const (
	genericTip       = "Reduce unnecessary expenses."
	underControlText = "\U0001F4A1 Spending is under control ✅ Don't worry."
)

// CategoryAmount is a category's total spend.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// CategoryShare is one advisory row: a category's total, its share of
// overall spend and the message derived from that share.
type CategoryShare struct {
	Category   Category
	Total      Money
	Percentage float64
	Message    string
}

// Summary is the aggregate view over one user's expenses.
//
// ByCategory holds totals for every category present in the input (absent
// categories are omitted, not zero-filled) in fixed enum order. Shares adds
// percentages and advisory messages; it is empty when the overall total is
// zero, and otherwise sorted by percentage descending with equal
// percentages keeping the enum order.
type Summary struct {
	Total      Money
	ByCategory []CategoryAmount
	Shares     []CategoryShare
}

// Summarize rolls a user's expenses up into per-category totals,
// percentages of total spend and advisory messages. Pure function: calling
// it twice on the same input yields identical output.
func Summarize(expenses []Expense) Summary {
	var total int64
	perCategory := make(map[Category]int64)
	for _, e := range expenses {
		total += e.Amount.Cents
		perCategory[e.Category] += e.Amount.Cents
	}

	s := Summary{Total: Money{Cents: total}}
	for _, cat := range Categories() {
		cents, present := perCategory[cat]
		if !present {
			continue
		}
		s.ByCategory = append(s.ByCategory, CategoryAmount{
			Category: cat,
			Amount:   Money{Cents: cents},
		})
	}

	if total <= 0 {
		return s
	}

	for _, ca := range s.ByCategory {
		pct := float64(ca.Amount.Cents) / float64(total) * 100
		s.Shares = append(s.Shares, CategoryShare{
			Category:   ca.Category,
			Total:      ca.Amount,
			Percentage: pct,
			Message:    adviceFor(ca.Category, pct),
		})
	}

	sort.SliceStable(s.Shares, func(i, j int) bool {
		return s.Shares[i].Percentage > s.Shares[j].Percentage
	})
	return s
}

func adviceFor(cat Category, percentage float64) string {
	if percentage > shareThreshold {
		tip, ok := categoryTips[cat]
		if !ok {
			tip = genericTip
		}
		return "\U0001F4A1 Tip: " + tip
	}
	return underControlText
}
