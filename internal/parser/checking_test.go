package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

const checkingFixture = `Date,Description,Amount
01/15/2024,STARBUCKS,"-$45.99"
01/15/2024,AMAZON,"-$120.50"
01/15/2024,PAYROLL,"$2,000.00"
`

func TestCheckingAccountParser_Parse(t *testing.T) {
	p := &CheckingAccountParser{}
	txns, err := p.Parse(strings.NewReader(checkingFixture), "checking.csv")
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "STARBUCKS", txns[0].Description)
	assert.Equal(t, 2, txns[0].RecordIndex)
	assert.Equal(t, "checking.csv", txns[0].SourceFile)

	amt, err := parseCurrencyAmount(txns[0].Amount)
	require.NoError(t, err)
	assert.True(t, amt.Equal(decimal.NewFromFloat(-45.99)))
}

func TestCheckingAccountParser_BadHeader(t *testing.T) {
	p := &CheckingAccountParser{}
	_, err := p.Parse(strings.NewReader("Wrong,Header,Here\n1,2,3\n"), "bad.csv")
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*ErrStructural))
}

func TestCheckingAccountParser_BadDateBecomesLowConfidence(t *testing.T) {
	p := &CheckingAccountParser{}
	txns, err := p.Parse(strings.NewReader("Date,Description,Amount\nNOTADATE,desc,-5.00\n"), "x.csv")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.NotNil(t, txns[0].Confidence)
	assert.Less(t, *txns[0].Confidence, 0.5)
	assert.NotEmpty(t, txns[0].Notes)
}

func TestParseCurrencyAmount(t *testing.T) {
	cases := map[string]string{
		`"$1,234.56"`: "1234.56",
		`-$45.99`:     "-45.99",
		`$0.00`:       "0",
	}
	for in, want := range cases {
		got, err := parseCurrencyAmount(strings.Trim(in, `"`))
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got.String())
	}
}

func TestCheckingAccountParser_ClassifyKind(t *testing.T) {
	p := &CheckingAccountParser{}
	assert.Equal(t, model.KindIncome, p.ClassifyKind("PAYROLL", decimal.NewFromInt(2000)))
	assert.Equal(t, model.KindExpense, p.ClassifyKind("STARBUCKS", decimal.NewFromInt(-5)))
	assert.Equal(t, model.KindTransfer, p.ClassifyKind("TRANSFER TO SAVINGS", decimal.NewFromInt(-100)))
}
