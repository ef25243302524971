package models

// BudgetLine is one named, categorized allocation of the event budget.
type BudgetLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// TotalBudget sums the amounts of lines. The empty set totals 0.
func TotalBudget(lines []BudgetLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}
