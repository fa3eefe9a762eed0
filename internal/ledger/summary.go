package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

var oneHundred = decimal.NewFromInt(100)

// GetMonthlyExpenseSummary reports what the user spent in the month against
// the budget recorded for it. Overspending floors the remainder at zero and
// caps the percentage at 100; a month without a budget reports zero for
// budget, remainder and percentage alike.
func (s *Store) GetMonthlyExpenseSummary(ctx context.Context, userID int64, month, year int) core.MonthlyExpenseSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, e := range s.expensesForMonth(userID, month, year) {
		total = total.Add(e.Amount)
	}

	summary := core.MonthlyExpenseSummary{
		TotalSpent:      total,
		Budget:          decimal.Zero,
		BudgetRemaining: decimal.Zero,
		Categories:      s.categoryExpenses(userID, month, year),
	}

	if b, ok := s.budgets[budgetKey(userID, month, year)]; ok {
		summary.Budget = b.Amount
		if remaining := b.Amount.Sub(total); remaining.Sign() > 0 {
			summary.BudgetRemaining = remaining
		}
		if b.Amount.IsPositive() {
			pct := total.Div(b.Amount).Mul(oneHundred).Round(0).IntPart()
			if pct > 100 {
				pct = 100
			}
			summary.BudgetPercentage = int(pct)
		}
	}

	s.logger.DebugContext(ctx, "Month summary computed",
		log.FieldOperation, log.OpSummary,
		log.FieldUserID, userID,
		log.FieldMonth, month,
		log.FieldYear, year,
		log.FieldAmount, summary.TotalSpent.String())

	return summary
}

// GetCategoryExpenses breaks a user's month down by category, biggest
// spender first, each entry carrying its share of the month's total.
func (s *Store) GetCategoryExpenses(_ context.Context, userID int64, month, year int) []core.ExpenseSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoryExpenses(userID, month, year)
}

// categoryExpenses does the grouping under the caller's lock. Percentages
// are shares of the month's total, zero when nothing was spent; equal
// totals order by category name to keep results stable.
func (s *Store) categoryExpenses(userID int64, month, year int) []core.ExpenseSummary {
	totals := make(map[core.Category]decimal.Decimal)
	periodTotal := decimal.Zero
	for _, e := range s.expensesForMonth(userID, month, year) {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		periodTotal = periodTotal.Add(e.Amount)
	}

	out := make([]core.ExpenseSummary, 0, len(totals))
	for category, total := range totals {
		entry := core.ExpenseSummary{Category: category, Total: total}
		if periodTotal.IsPositive() {
			entry.Percentage = int(total.Div(periodTotal).Mul(oneHundred).Round(0).IntPart())
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Category < out[j].Category
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// GetMonthlyTotalsByCategory returns the user's spending in one category
// for each of the trailing months, current month included, oldest first.
// Months with no matching expenses contribute zero-amount points.
func (s *Store) GetMonthlyTotalsByCategory(_ context.Context, userID int64, category core.Category, months int) []core.CategoryMonthlyTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	// Anchoring on the first of the month keeps AddDate from sliding into
	// neighbor months and survives year rollovers.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []core.CategoryMonthlyTotal
	for i := 0; i < months; i++ {
		at := anchor.AddDate(0, -i, 0)
		total := decimal.Zero
		for _, e := range s.expensesForMonth(userID, int(at.Month()), at.Year()) {
			if e.Category == category {
				total = total.Add(e.Amount)
			}
		}
		out = append(out, core.CategoryMonthlyTotal{
			Month: int(at.Month()),
			Year:  at.Year(),
			Total: total,
		})
	}

	// Built newest first; callers chart chronologically.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
