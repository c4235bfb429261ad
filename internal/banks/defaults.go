package banks

import "github.com/ledgertrace/ledgertrace/internal/model"

// DefaultRegistry returns a starter bank registry for a freshly initialized
// project: one checking account and one credit card, both attributable by
// the built-in delimited parsers without further configuration.
func DefaultRegistry() []model.Bank {
	return []model.Bank{
		{ID: "primary-checking", Name: "Primary Checking", DefaultCurrency: "USD"},
		{ID: "primary-credit-card", Name: "Primary Credit Card", DefaultCurrency: "USD"},
	}
}
