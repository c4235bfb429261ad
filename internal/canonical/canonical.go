// Package canonical turns a RawTransaction into an immutable, identity-
// bearing Transaction: normalized date, signed decimal amount in the
// reference currency, and a deterministic content hash.
package canonical

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
	"github.com/ledgertrace/ledgertrace/internal/parser"
)

// dateLayout is the single textual date format every built-in parser
// normalizes its RawTransaction.Date field to, regardless of source.
const dateLayout = "01/02/2006"

// Options configures a canonicalization run.
type Options struct {
	ReferenceCurrency string    // e.g. "USD"; defaults to USD when empty
	ExtractedAt       time.Time // provenance timestamp; caller-supplied so runs are reproducible
	Bank              string    // Bank.ID this batch is attributed to
	ParserVersion     string
}

// Canonicalize converts one RawTransaction into a Transaction. It does not
// assign identity by itself failing the operation: a Transaction with an
// unparseable date or amount still gets an Identity (of the zero value)
// so the caller can route it to manual review rather than lose the record.
func Canonicalize(raw model.RawTransaction, p parser.Parser, opts Options) (model.Transaction, error) {
	reference := opts.ReferenceCurrency
	if reference == "" {
		reference = "USD"
	}

	var log []string

	date, err := time.Parse(dateLayout, raw.Date)
	normalizedDate := ""
	if err != nil {
		log = append(log, fmt.Sprintf("could not normalize date %q: %v", raw.Date, err))
	} else {
		normalizedDate = date.Format("2006-01-02")
	}

	original, err := ParseAmount(raw.Amount)
	if err != nil {
		log = append(log, fmt.Sprintf("could not parse amount %q: %v", raw.Amount, err))
		original = decimal.Zero
	}

	currency := raw.CurrencyHint
	if currency == "" {
		currency = reference
	}

	canonicalAmount, description := convert(original, currency, reference, raw.ExchangeRateText, raw.Description, &log)

	// Credit-card statements sign purchases positive and payments negative;
	// the ledger signs inflows positive, so those amounts are flipped.
	if raw.SourceKind == model.SourceCreditCard {
		canonicalAmount = canonicalAmount.Neg()
	}

	merchant := ""
	if raw.Merchant != nil {
		merchant = *raw.Merchant
	} else if extractor, ok := p.(parser.MerchantExtractor); ok {
		if m, found := extractor.ExtractMerchant(raw.Description); found {
			merchant = m
		}
	}

	category := ""
	if raw.Category != nil {
		category = *raw.Category
	}

	kind := model.KindExpense
	if classifier, ok := p.(parser.KindClassifier); ok {
		kind = classifier.ClassifyKind(raw.Description, canonicalAmount)
	}

	log = append(log, raw.Notes...)

	tx := model.Transaction{
		Date:           normalizedDate,
		Amount:         canonicalAmount,
		AmountOriginal: original.StringFixed(displayPrecision),
		Currency:       currency,
		Description:    description,
		Merchant:       merchant,
		Kind:           kind,
		Category:       category,
		Bank:           opts.Bank,
		Provenance: model.Provenance{
			SourceFile:        raw.SourceFile,
			RecordIndex:       raw.RecordIndex,
			ExtractedAt:       opts.ExtractedAt,
			ParserVersion:     opts.ParserVersion,
			TransformationLog: log,
		},
		Metadata: map[string]any{},
	}
	tx.Identity = Identity(tx.Date, tx.Amount, tx.Merchant, tx.Bank)

	return tx, nil
}

// convert applies the multi-currency conversion rule: canonical amount is
// original/rate when currency differs from the reference currency,
// otherwise equal to original. It also builds the enriched description
// carrying an explicit textual record of the conversion.
func convert(original decimal.Decimal, currency, reference, rateText, description string, log *[]string) (decimal.Decimal, string) {
	if currency == reference {
		return original, description
	}

	rate, err := decimal.NewFromString(rateText)
	if err != nil || rate.IsZero() {
		*log = append(*log, fmt.Sprintf("invalid exchange rate %q, treating as 1.0", rateText))
		rate = decimal.NewFromInt(1)
	}

	canonicalAmount := original.Div(rate)
	enriched := fmt.Sprintf("%s (%s %s → $%s %s @ rate %s)",
		description,
		original.Abs().StringFixed(displayPrecision),
		currency,
		canonicalAmount.Abs().StringFixed(displayPrecision),
		reference,
		rate.StringFixed(4),
	)
	return canonicalAmount, enriched
}
