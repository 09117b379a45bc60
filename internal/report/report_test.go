package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypulse/internal/domain"
)

func entry(amount float64, txType domain.TransactionType, categoryID string, occurredAt time.Time) domain.Transaction {
	return domain.Transaction{
		ID:         domain.NewTransactionID(),
		Amount:     decimal.NewFromFloat(amount),
		Type:       txType,
		CategoryID: categoryID,
		AccountID:  "acc-1",
		OccurredAt: occurredAt,
	}
}

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestMonthlySummary(t *testing.T) {
	txs := []domain.Transaction{
		entry(1200, domain.TransactionTypeIncome, "salary", date(2026, time.September, 1, 9)),
		entry(15.50, domain.TransactionTypeExpense, "food", date(2026, time.September, 1, 13)),
		entry(45.00, domain.TransactionTypeExpense, "transport", date(2026, time.September, 14, 8)),
		entry(30, domain.TransactionTypeTransfer, "", date(2026, time.September, 20, 10)),
		entry(999, domain.TransactionTypeExpense, "food", date(2026, time.August, 31, 23)),
	}

	sum := MonthlySummary(txs, 2026, time.September)

	assert.True(t, sum.Income.Equal(decimal.NewFromFloat(1200)), "income = %s", sum.Income)
	assert.True(t, sum.Expense.Equal(decimal.NewFromFloat(60.50)), "expense = %s", sum.Expense)
	assert.True(t, sum.Net.Equal(sum.Income.Sub(sum.Expense)), "net must equal income minus expense")
}

func TestMonthlySummaryEmpty(t *testing.T) {
	sum := MonthlySummary(nil, 2026, time.September)
	assert.True(t, sum.Income.IsZero())
	assert.True(t, sum.Expense.IsZero())
	assert.True(t, sum.Net.IsZero())
}

func TestDailyGroups(t *testing.T) {
	// Storage order: most recent insertion first.
	newest := entry(5, domain.TransactionTypeExpense, "food", date(2026, time.September, 14, 20))
	older := entry(7, domain.TransactionTypeExpense, "food", date(2026, time.September, 14, 9))
	previousDay := entry(3, domain.TransactionTypeIncome, "salary", date(2026, time.September, 12, 12))
	txs := []domain.Transaction{newest, older, previousDay}

	groups := DailyGroups(txs)

	require.Len(t, groups, 2)
	assert.Equal(t, date(2026, time.September, 14, 0), groups[0].Date, "most recent day first")
	assert.Equal(t, date(2026, time.September, 12, 0), groups[1].Date)

	require.Len(t, groups[0].Transactions, 2)
	assert.Equal(t, newest.ID, groups[0].Transactions[0].ID, "storage order kept within a day")
	assert.Equal(t, older.ID, groups[0].Transactions[1].ID)
}

func TestDailyGroupsEmpty(t *testing.T) {
	assert.Empty(t, DailyGroups(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	food := *domain.NewCategory("Food", "Utensils", "#FF5252", domain.TransactionTypeExpense)
	transport := *domain.NewCategory("Transport", "Bus", "#FF9800", domain.TransactionTypeExpense)
	categories := []domain.Category{food, transport}

	when := date(2026, time.September, 10, 12)
	txs := []domain.Transaction{
		entry(70, domain.TransactionTypeExpense, food.ID, when),
		entry(20, domain.TransactionTypeExpense, transport.ID, when),
		entry(10, domain.TransactionTypeExpense, "gone", when),
		entry(5000, domain.TransactionTypeIncome, "salary", when), // income never counted
	}

	breakdown := CategoryBreakdown(txs, categories)

	require.Len(t, breakdown, 3)
	assert.Equal(t, "Food", breakdown[0].Name, "sorted by total descending")
	assert.Equal(t, "Transport", breakdown[1].Name)
	assert.Equal(t, UnknownCategoryName, breakdown[2].Name)
	assert.Equal(t, UnknownCategoryColor, breakdown[2].Color)

	assert.InDelta(t, 70.0, breakdown[0].Percentage, 1e-9)
	assert.InDelta(t, 20.0, breakdown[1].Percentage, 1e-9)
	assert.InDelta(t, 10.0, breakdown[2].Percentage, 1e-9)

	percentages := 0.0
	total := decimal.Zero
	for _, e := range breakdown {
		percentages += e.Percentage
		total = total.Add(e.Total)
	}
	assert.InDelta(t, 100.0, percentages, 1e-9)

	// Totals line up with the monthly summary over the same set.
	sum := MonthlySummary(txs, 2026, time.September)
	assert.True(t, total.Equal(sum.Expense),
		"breakdown total %s != monthly expense %s", total, sum.Expense)
}

func TestCategoryBreakdownZeroTotal(t *testing.T) {
	when := date(2026, time.September, 10, 12)
	txs := []domain.Transaction{
		entry(0, domain.TransactionTypeExpense, "a", when),
		entry(0, domain.TransactionTypeExpense, "b", when),
	}

	breakdown := CategoryBreakdown(txs, nil)

	require.Len(t, breakdown, 2)
	for _, e := range breakdown {
		assert.Zero(t, e.Percentage, "percentage is defined as 0 when the total is 0")
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	assert.Empty(t, CategoryBreakdown(nil, nil))
}

func TestWeeklySummary(t *testing.T) {
	// 2026-09-16 is a Wednesday; with a Monday week start the window is
	// Mon 14th through Sun 20th.
	anchor := date(2026, time.September, 16, 15)
	txs := []domain.Transaction{
		entry(100, domain.TransactionTypeIncome, "salary", date(2026, time.September, 14, 0)),  // Monday, in
		entry(25, domain.TransactionTypeExpense, "food", date(2026, time.September, 20, 23)),   // Sunday, in
		entry(999, domain.TransactionTypeExpense, "food", date(2026, time.September, 13, 12)),  // previous Sunday, out
		entry(999, domain.TransactionTypeExpense, "food", date(2026, time.September, 21, 0)),   // next Monday, out
	}

	sum := WeeklySummary(txs, anchor, domain.WeekStartMonday)

	assert.True(t, sum.Income.Equal(decimal.NewFromFloat(100)), "income = %s", sum.Income)
	assert.True(t, sum.Expense.Equal(decimal.NewFromFloat(25)), "expense = %s", sum.Expense)

	// With a Sunday week start the window shifts to Sun 13th–Sat 19th: the
	// previous Sunday's expense joins and this Sunday's drops out.
	sundayWeek := WeeklySummary(txs, anchor, domain.WeekStartSunday)
	assert.True(t, sundayWeek.Expense.Equal(decimal.NewFromFloat(999)), "expense = %s", sundayWeek.Expense)
}
