package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// CreditCardParser reads the five-column credit-card export:
// Date,Description,Amount,Category,Merchant.
type CreditCardParser struct{}

const (
	creditCardDateFormat = "01/02/2006"
	creditCardNumFields  = 5
	creditCardColDate    = 0
	creditCardColDesc    = 1
	creditCardColAmount  = 2
	creditCardColCat     = 3
	creditCardColMerch   = 4
	creditCardVersion    = "creditcard-v1"
)

func (p *CreditCardParser) SourceKind() model.SourceKind { return model.SourceCreditCard }
func (p *CreditCardParser) Version() string              { return creditCardVersion }

func (p *CreditCardParser) Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = creditCardNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ErrStructural{File: sourceFile, Err: err}
	}
	if len(records) == 0 {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("empty file, expected header row")}
	}
	header := strings.Join(records[0], ",")
	if header != "Date,Description,Amount,Category,Merchant" {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("unexpected header %q", header)}
	}

	var out []model.RawTransaction
	for i, rec := range records[1:] {
		recordIndex := i + 2
		raw := model.RawTransaction{
			SourceKind:  model.SourceCreditCard,
			SourceFile:  sourceFile,
			RecordIndex: recordIndex,
			RawImage:    strings.Join(rec, ","),
			Date:        rec[creditCardColDate],
			Amount:      rec[creditCardColAmount],
			Description: rec[creditCardColDesc],
		}

		if cat := strings.TrimSpace(rec[creditCardColCat]); cat != "" {
			raw.Category = &cat
		}
		if merch := strings.TrimSpace(rec[creditCardColMerch]); merch != "" {
			raw.Merchant = &merch
		}

		if _, err := time.Parse(creditCardDateFormat, rec[creditCardColDate]); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable date %q: %v", rec[creditCardColDate], err))
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(rec[creditCardColAmount])); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable amount %q: %v", rec[creditCardColAmount], err))
		}

		out = append(out, raw)
	}
	return out, nil
}

// ExtractMerchant falls back to a heuristic over the description (the
// dedicated Merchant column is preferred upstream when present): take the
// first one or two whitespace-delimited tokens, which typically precede a
// location suffix in credit-card narrations.
func (p *CreditCardParser) ExtractMerchant(description string) (string, bool) {
	words := strings.Fields(strings.TrimSpace(description))
	if len(words) == 0 {
		return "", false
	}
	if len(words) >= 2 {
		return words[0] + " " + words[1], true
	}
	return words[0], true
}

// ClassifyKind treats ACH deposits and payment narrations as card payments
// (money arriving to pay down the balance); everything else on a credit
// card is an expense.
func (p *CreditCardParser) ClassifyKind(description string, amount decimal.Decimal) model.Kind {
	lower := strings.ToLower(description)
	if strings.Contains(lower, "ach deposit") || strings.Contains(lower, "payment") {
		return model.KindCardPayment
	}
	return model.KindExpense
}
