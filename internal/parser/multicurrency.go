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

// MultiCurrencyParser reads the nine-column multi-currency delimited
// export: ID,Date,Amount,Currency,Description,PayeeName,ExchangeRate,
// FeeAmount,TotalAmount. It leaves the currency conversion itself to
// canonicalization; it only carries the currency and rate forward.
type MultiCurrencyParser struct{}

const (
	multiCurrencyDateFormat = "01/02/2006"
	multiCurrencyNumFields  = 9
	multiCurrencyColID      = 0
	multiCurrencyColDate    = 1
	multiCurrencyColAmount  = 2
	multiCurrencyColCcy     = 3
	multiCurrencyColDesc    = 4
	multiCurrencyColPayee   = 5
	multiCurrencyColRate    = 6
	multiCurrencyVersion    = "multicurrency-v1"
)

func (p *MultiCurrencyParser) SourceKind() model.SourceKind { return model.SourceMultiCurrency }
func (p *MultiCurrencyParser) Version() string              { return multiCurrencyVersion }

func (p *MultiCurrencyParser) Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = multiCurrencyNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ErrStructural{File: sourceFile, Err: err}
	}
	if len(records) == 0 {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("empty file, expected header row")}
	}
	header := strings.Join(records[0], ",")
	if header != "ID,Date,Amount,Currency,Description,PayeeName,ExchangeRate,FeeAmount,TotalAmount" {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("unexpected header %q", header)}
	}

	var out []model.RawTransaction
	for i, rec := range records[1:] {
		recordIndex := i + 2

		currency := strings.TrimSpace(rec[multiCurrencyColCcy])
		if currency == "" {
			currency = "USD"
		}
		rate := strings.TrimSpace(rec[multiCurrencyColRate])
		if rate == "" {
			rate = "1.0"
		}

		raw := model.RawTransaction{
			SourceKind:       model.SourceMultiCurrency,
			SourceFile:       sourceFile,
			RecordIndex:      recordIndex,
			RawImage:         strings.Join(rec, ","),
			Date:             rec[multiCurrencyColDate],
			Amount:           strings.TrimSpace(strings.ReplaceAll(rec[multiCurrencyColAmount], ",", "")),
			Description:      rec[multiCurrencyColDesc],
			CurrencyHint:     currency,
			ExchangeRateText: rate,
		}

		if payee := strings.TrimSpace(rec[multiCurrencyColPayee]); payee != "" {
			raw.Merchant = &payee
		} else if merchant, ok := p.ExtractMerchant(rec[multiCurrencyColDesc]); ok {
			raw.Merchant = &merchant
		}

		if _, err := time.Parse(multiCurrencyDateFormat, rec[multiCurrencyColDate]); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable date %q: %v", rec[multiCurrencyColDate], err))
		}
		if _, err := decimal.NewFromString(raw.Amount); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable amount %q: %v", raw.Amount, err))
		}
		if _, err := decimal.NewFromString(rate); err != nil {
			conf := 0.2
			raw.Confidence = &conf
			raw.Notes = append(raw.Notes, fmt.Sprintf("unparseable exchange rate %q: %v", rate, err))
		}

		out = append(out, raw)
	}
	return out, nil
}

// ExtractMerchant recognizes "Payment from X"/"Payment to X" narrations,
// falling back to the first significant word.
func (p *MultiCurrencyParser) ExtractMerchant(description string) (string, bool) {
	if description == "" {
		return "", false
	}
	if fromPos := strings.Index(description, "from "); fromPos >= 0 {
		merchant := strings.TrimSpace(description[fromPos+len("from "):])
		if merchant != "" {
			return merchant, true
		}
	}
	if toPos := strings.Index(description, "to "); toPos >= 0 {
		merchant := strings.TrimSpace(description[toPos+len("to "):])
		if merchant != "" {
			return merchant, true
		}
	}
	words := strings.Fields(description)
	if len(words) == 0 {
		return "", false
	}
	if len(words[0]) > 2 {
		return words[0], true
	}
	return "", false
}

// ClassifyKind treats currency conversions as transfers, positive amounts
// and "payment from"/"received" narrations as income, "payment to"/
// "invoice" as expense, defaulting to transfer.
func (p *MultiCurrencyParser) ClassifyKind(description string, amount decimal.Decimal) model.Kind {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "convert") || strings.Contains(lower, "exchange"):
		return model.KindTransfer
	case amount.IsPositive() || strings.Contains(lower, "payment from") || strings.Contains(lower, "received"):
		return model.KindIncome
	case strings.Contains(lower, "payment to") || strings.Contains(lower, "invoice"):
		return model.KindExpense
	default:
		return model.KindTransfer
	}
}
