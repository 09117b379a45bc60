// Package report derives presentation views from ledger snapshots. Every
// function here is pure: it never mutates its inputs and is safe to call any
// number of times.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/domain"
)

// Synthetic category used when a transaction's category reference no longer
// resolves. Unknown references degrade to this placeholder instead of
// failing: the ledger is append-only and categories may be edited or deleted
// independently.
const (
	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#666"
)

// Summary totals one reporting window.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthlySummary sums income and expense amounts for transactions whose
// local calendar date falls in the given month. Net is income minus expense.
func MonthlySummary(transactions []domain.Transaction, year int, month time.Month) Summary {
	sum := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range transactions {
		y, m, _ := tx.OccurredAt.Date()
		if y != year || m != month {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			sum.Income = sum.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			sum.Expense = sum.Expense.Add(tx.Amount)
		}
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return sum
}

// DayGroup is one calendar day's worth of transactions.
type DayGroup struct {
	Date         time.Time            `json:"date"`
	Transactions []domain.Transaction `json:"transactions"`
}

// DailyGroups buckets transactions by calendar date (time of day discarded),
// most recent day first. Within a day the ledger storage order is kept, so
// entries stay most-recent-insertion-first.
func DailyGroups(transactions []domain.Transaction) []DayGroup {
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}
	index := make(map[dayKey]int)
	var groups []DayGroup
	for _, tx := range transactions {
		y, m, d := tx.OccurredAt.Date()
		k := dayKey{y, m, d}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, DayGroup{
				Date: time.Date(y, m, d, 0, 0, 0, 0, tx.OccurredAt.Location()),
			})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})
	return groups
}

// BreakdownEntry is one category's share of total expenses.
type BreakdownEntry struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdown totals expense transactions per category, sorted by
// total descending. Each entry carries its share of the grand total as a
// percentage, defined as 0 when the grand total is 0.
func CategoryBreakdown(transactions []domain.Transaction, categories []domain.Category) []BreakdownEntry {
	totals := make(map[string]decimal.Decimal)
	var order []string
	grand := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != domain.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[tx.CategoryID]; !seen {
			order = append(order, tx.CategoryID)
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(tx.Amount)
		grand = grand.Add(tx.Amount)
	}

	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	hundred := decimal.NewFromInt(100)
	entries := make([]BreakdownEntry, 0, len(order))
	for _, id := range order {
		entry := BreakdownEntry{
			CategoryID: id,
			Name:       UnknownCategoryName,
			Color:      UnknownCategoryColor,
			Total:      totals[id],
		}
		if cat, ok := byID[id]; ok {
			entry.Name = cat.Name
			entry.Color = cat.Color
		}
		if grand.IsPositive() {
			entry.Percentage, _ = totals[id].Div(grand).Mul(hundred).Float64()
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Total.GreaterThan(entries[b].Total)
	})
	return entries
}

// WeeklySummary totals the week containing anchor. The week boundary comes
// from the user's start-of-week preference.
func WeeklySummary(transactions []domain.Transaction, anchor time.Time, weekStart domain.WeekStart) Summary {
	start := startOfWeek(anchor, weekStart.Weekday())
	end := start.AddDate(0, 0, 7)

	sum := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range transactions {
		y, m, d := tx.OccurredAt.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
		if day.Before(start) || !day.Before(end) {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			sum.Income = sum.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			sum.Expense = sum.Expense.Add(tx.Amount)
		}
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return sum
}

func startOfWeek(t time.Time, boundary time.Weekday) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) - int(boundary) + 7) % 7
	return day.AddDate(0, 0, -offset)
}
