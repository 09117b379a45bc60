package handler

import (
	"net/http"
	"strconv"
	"time"

	"moneypulse/internal/report"
)

// MonthlyReport handles GET /reports/monthly?year=&month=. Both parameters
// default to the current month.
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = now.Year()
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		monthNum = int(now.Month())
	}

	summary := report.MonthlySummary(h.ledger.Transactions(), year, time.Month(monthNum))
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"year":     year,
		"month":    monthNum,
		"currency": h.settings.Currency(),
		"summary":  summary,
	})
}

// DailyReport handles GET /reports/daily.
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	groups := report.DailyGroups(h.ledger.Transactions())
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"days": groups,
	})
}

// CategoryReport handles GET /reports/categories.
func (h *Handler) CategoryReport(w http.ResponseWriter, r *http.Request) {
	entries := report.CategoryBreakdown(h.ledger.Transactions(), h.categories.List())
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"currency":  h.settings.Currency(),
		"breakdown": entries,
	})
}

// WeeklyReport handles GET /reports/weekly. The week boundary follows the
// user's start-of-week preference.
func (h *Handler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	weekStart := h.settings.WeekStart()
	summary := report.WeeklySummary(h.ledger.Transactions(), time.Now(), weekStart)
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": weekStart,
		"summary":    summary,
	})
}
