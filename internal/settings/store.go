// Package settings holds the user-facing preference records: profile,
// display currency, start of week and theme flag.
package settings

import (
	"context"
	"sync"

	"moneypulse/internal/domain"
	"moneypulse/internal/util"
	"moneypulse/pkg/kvstore"
)

// Store owns the preference records. Each setter persists its own key; no
// acknowledgement is awaited.
type Store struct {
	mu        sync.Mutex
	profile   domain.UserProfile
	currency  domain.Currency
	weekStart domain.WeekStart
	darkMode  bool
	kv        kvstore.Store
}

// NewStore loads persisted preferences, falling back to defaults for any
// key that is absent or malformed.
func NewStore(ctx context.Context, kv kvstore.Store) *Store {
	s := &Store{
		profile:   domain.DefaultProfile(),
		currency:  domain.DefaultCurrency(),
		weekStart: domain.WeekStartSunday,
		darkMode:  true,
		kv:        kv,
	}

	var profile domain.UserProfile
	if kv.Load(ctx, kvstore.KeyProfile, &profile) {
		s.profile = profile
	}
	var currency domain.Currency
	if kv.Load(ctx, kvstore.KeyCurrency, &currency) && currency.Code != "" {
		s.currency = currency
	}
	var weekStart domain.WeekStart
	if kv.Load(ctx, kvstore.KeyWeekStart, &weekStart) && weekStart.Valid() {
		s.weekStart = weekStart
	}
	var darkMode bool
	if kv.Load(ctx, kvstore.KeyDarkMode, &darkMode) {
		s.darkMode = darkMode
	}

	return s
}

// Profile returns the user profile.
func (s *Store) Profile() domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetProfile replaces the user profile.
func (s *Store) SetProfile(ctx context.Context, profile domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.kv.Save(context.WithoutCancel(ctx), kvstore.KeyProfile, profile)
}

// Currency returns the display currency.
func (s *Store) Currency() domain.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency replaces the display currency.
func (s *Store) SetCurrency(ctx context.Context, currency domain.Currency) error {
	if currency.Code == "" {
		return util.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = currency
	s.kv.Save(context.WithoutCancel(ctx), kvstore.KeyCurrency, currency)
	return nil
}

// WeekStart returns the start-of-week preference.
func (s *Store) WeekStart() domain.WeekStart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weekStart
}

// SetWeekStart replaces the start-of-week preference.
func (s *Store) SetWeekStart(ctx context.Context, weekStart domain.WeekStart) error {
	if !weekStart.Valid() {
		return util.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekStart = weekStart
	s.kv.Save(context.WithoutCancel(ctx), kvstore.KeyWeekStart, weekStart)
	return nil
}

// DarkMode returns the theme flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// SetDarkMode replaces the theme flag.
func (s *Store) SetDarkMode(ctx context.Context, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkMode = enabled
	s.kv.Save(context.WithoutCancel(ctx), kvstore.KeyDarkMode, enabled)
}
