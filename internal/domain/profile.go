package domain

import "time"

// UserProfile is a simple value record; no invariants beyond field presence.
type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar,omitempty"`
	Premium bool   `json:"is_premium"`
}

// Currency describes how amounts are labelled and formatted for display.
// Currency is a label only; no conversion arithmetic exists in this system.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// WeekStart is the user's preferred first day of the week, used as the
// grouping boundary for weekly reporting.
type WeekStart string

const (
	WeekStartSunday   WeekStart = "Sunday"
	WeekStartMonday   WeekStart = "Monday"
	WeekStartSaturday WeekStart = "Saturday"
)

// Valid reports whether w is one of the known week start options.
func (w WeekStart) Valid() bool {
	switch w {
	case WeekStartSunday, WeekStartMonday, WeekStartSaturday:
		return true
	}
	return false
}

// Weekday maps the preference onto time.Weekday.
func (w WeekStart) Weekday() time.Weekday {
	switch w {
	case WeekStartMonday:
		return time.Monday
	case WeekStartSaturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}
