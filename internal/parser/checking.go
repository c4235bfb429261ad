package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// CheckingAccountParser reads the three-column checking-account export:
// Date,Description,Amount with quoted currency amounts.
type CheckingAccountParser struct{}

const (
	checkingDateFormat = "01/02/2006"
	checkingNumFields  = 3
	checkingColDate    = 0
	checkingColDesc    = 1
	checkingColAmount  = 2
	checkingVersion    = "checking-v1"
)

func (p *CheckingAccountParser) SourceKind() model.SourceKind { return model.SourceCheckingAccount }
func (p *CheckingAccountParser) Version() string              { return checkingVersion }

func (p *CheckingAccountParser) Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = checkingNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ErrStructural{File: sourceFile, Err: err}
	}
	if len(records) == 0 {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("empty file, expected header row")}
	}
	header := strings.Join(records[0], ",")
	if header != "Date,Description,Amount" {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("unexpected header %q", header)}
	}

	var out []model.RawTransaction
	for i, rec := range records[1:] {
		recordIndex := i + 2 // header counted as line 1
		raw := model.RawTransaction{
			SourceKind:  model.SourceCheckingAccount,
			SourceFile:  sourceFile,
			RecordIndex: recordIndex,
			RawImage:    strings.Join(rec, ","),
			Date:        rec[checkingColDate],
			Amount:      rec[checkingColAmount],
			Description: rec[checkingColDesc],
		}

		if _, err := time.Parse(checkingDateFormat, rec[checkingColDate]); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable date %q: %v", rec[checkingColDate], err))
		}
		if _, err := parseCurrencyAmount(rec[checkingColAmount]); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable amount %q: %v", rec[checkingColAmount], err))
		}

		out = append(out, raw)
	}
	return out, nil
}

// ExtractMerchant treats the whole description as the merchant, trimmed of
// surrounding whitespace and collapsed internal spacing.
func (p *CheckingAccountParser) ExtractMerchant(description string) (string, bool) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", false
	}
	return strings.Join(strings.Fields(trimmed), " "), true
}

// ClassifyKind treats positive amounts as income, negative as expense,
// unless the description signals a transfer.
func (p *CheckingAccountParser) ClassifyKind(description string, amount decimal.Decimal) model.Kind {
	upper := strings.ToUpper(description)
	if strings.Contains(upper, "TRANSFER") {
		return model.KindTransfer
	}
	if amount.IsPositive() {
		return model.KindIncome
	}
	return model.KindExpense
}

// parseCurrencyAmount parses a quoted currency string such as `"$1,234.56"`
// or `"-$45.99"` into a decimal.
func parseCurrencyAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, strconv.ErrSyntax
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
