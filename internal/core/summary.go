package core

import "github.com/shopspring/decimal"

// ExpenseSummary is one category's share of a month's spending.
type ExpenseSummary struct {
	Category   Category
	Total      decimal.Decimal
	Percentage int // share of the month's total, rounded
}

// MonthlyExpenseSummary reports a user's spending for one month against the
// budget recorded for that month, if any.
type MonthlyExpenseSummary struct {
	TotalSpent       decimal.Decimal
	Budget           decimal.Decimal // zero when no budget is set
	BudgetRemaining  decimal.Decimal // never negative
	BudgetPercentage int             // of budget consumed, capped at 100
	Categories       []ExpenseSummary
}

// CategoryMonthlyTotal is one point of a category spending trend.
type CategoryMonthlyTotal struct {
	Month int // 1-12
	Year  int
	Total decimal.Decimal
}
