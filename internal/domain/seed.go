package domain

import "github.com/shopspring/decimal"

// SeedAccounts returns the accounts used on first run, before anything has
// been persisted.
func SeedAccounts() []Account {
	return []Account{
		*NewAccount("Cash", AccountKindCash, decimal.NewFromFloat(150.00), "USD", ""),
		*NewAccount("Chase Bank", AccountKindBank, decimal.NewFromFloat(2450.50), "USD", ""),
		*NewAccount("Aptos Hot Wallet", AccountKindChainWallet, decimal.NewFromFloat(125.00), "USDC", "0x123...abc"),
	}
}

// SeedCategories returns the default category set. Both the income and the
// expense type start with at least one category, which the registry's delete
// guard then preserves.
func SeedCategories() []Category {
	return []Category{
		*NewCategory("Food", "Utensils", "#FF5252", TransactionTypeExpense),
		*NewCategory("Transport", "Bus", "#FF9800", TransactionTypeExpense),
		*NewCategory("Shopping", "ShoppingBag", "#2196F3", TransactionTypeExpense),
		*NewCategory("Salary", "Briefcase", "#4CAF50", TransactionTypeIncome),
		*NewCategory("Crypto", "Bitcoin", "#9C27B0", TransactionTypeIncome),
		*NewCategory("Entertainment", "Film", "#E91E63", TransactionTypeExpense),
		*NewCategory("Health", "Heart", "#F44336", TransactionTypeExpense),
		*NewCategory("Education", "Book", "#3F51B5", TransactionTypeExpense),
		*NewCategory("Bills", "FileText", "#607D8B", TransactionTypeExpense),
	}
}

// DefaultProfile returns the profile used until the user edits it.
func DefaultProfile() UserProfile {
	return UserProfile{
		ID:   "local",
		Name: "MoneyPulse User",
	}
}

// DefaultCurrency returns the display currency used until the user picks one.
func DefaultCurrency() Currency {
	return Currency{Code: "USD", Symbol: "$", Name: "US Dollar"}
}
