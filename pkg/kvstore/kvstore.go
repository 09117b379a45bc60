// Package kvstore provides the key-value persistence dependency the core is
// built against: whole-value snapshots keyed by collection name.
package kvstore

import "context"

// Store is the persistence contract injected into the core. Load never
// surfaces an error to the caller and Save is fire-and-forget;
// implementations log their own failures. There is no ordering guarantee
// across distinct keys, only that each key's latest value wins.
type Store interface {
	// Load unmarshals the stored value for key into dest and reports whether
	// it did. Absent keys and malformed stored values both return false, so
	// callers keep whatever default they started with. When Load returns
	// false the contents of dest are undefined and must not be used.
	Load(ctx context.Context, key string, dest any) bool

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value any)
}

// Collection keys, one per top-level collection.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyProfile      = "userProfile"
	KeyCurrency     = "currency"
	KeyWeekStart    = "startOfWeek"
	KeyDarkMode     = "isDarkMode"
)
