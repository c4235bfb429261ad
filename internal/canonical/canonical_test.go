package canonical

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertrace/ledgertrace/internal/model"
	"github.com/ledgertrace/ledgertrace/internal/parser"
)

func TestCanonicalize_SameSidePreservesUnmodifiedAmount(t *testing.T) {
	raw := model.RawTransaction{
		SourceFile:  "checking.csv",
		RecordIndex: 2,
		Date:        "01/15/2024",
		Amount:      "-$45.99",
		Description: "STARBUCKS",
	}

	tx, err := Canonicalize(raw, &parser.CheckingAccountParser{}, Options{
		Bank:          "chase-checking",
		ParserVersion: "checking-v1",
		ExtractedAt:   time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.NewFromFloat(-45.99)), tx.Amount.String())
	assert.Equal(t, "USD", tx.Currency)
	assert.NotEmpty(t, tx.Identity)
	assert.Equal(t, "chase-checking", tx.Bank)
	assert.Equal(t, "checking.csv", tx.Provenance.SourceFile)
	assert.Equal(t, 2, tx.Provenance.RecordIndex)
}

// Scenario 3: multi-currency conversion divides by rate and the enriched
// description carries the exact textual record spec.md §8 demands.
func TestConvert_MultiCurrency(t *testing.T) {
	original := decimal.NewFromFloat(500.00)
	amount, description := convert(original, "EUR", "USD", "0.93", "Hotel stay", nil)

	assert.True(t, amount.Equal(decimal.NewFromFloat(500).Div(decimal.NewFromFloat(0.93))))
	assert.Contains(t, description, "500.00 EUR")
	assert.Contains(t, description, "$537.63 USD")
	assert.Contains(t, description, "@ rate 0.9300")
}

func TestConvert_SameCurrencyIsIdentity(t *testing.T) {
	original := decimal.NewFromFloat(42.00)
	amount, description := convert(original, "USD", "USD", "", "Groceries", nil)

	assert.True(t, amount.Equal(original))
	assert.Equal(t, "Groceries", description)
}

func TestConvert_InvalidRateFallsBackToOne(t *testing.T) {
	var log []string
	original := decimal.NewFromFloat(10.00)
	amount, _ := convert(original, "GBP", "USD", "not-a-number", "Import", &log)

	assert.True(t, amount.Equal(original))
	require.Len(t, log, 1)
	assert.Contains(t, log[0], "invalid exchange rate")
}

func TestIdentity_DeterministicAndCaseInsensitive(t *testing.T) {
	a := Identity("2024-01-15", decimal.NewFromFloat(45.99), "Starbucks", "chase-checking")
	b := Identity("2024-01-15", decimal.NewFromFloat(45.99), "STARBUCKS", "Chase-Checking")
	assert.Equal(t, a, b)

	c := Identity("2024-01-16", decimal.NewFromFloat(45.99), "Starbucks", "chase-checking")
	assert.NotEqual(t, a, c)
}

func TestParseAmount_QuotedCurrencyString(t *testing.T) {
	d, err := ParseAmount("-$1,234.56")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromFloat(-1234.56)))
}

func TestParseAmount_PlainDecimal(t *testing.T) {
	d, err := ParseAmount("120.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromFloat(120.50)))
}

func TestParseAmount_Empty(t *testing.T) {
	_, err := ParseAmount("$")
	assert.Error(t, err)
}
