package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is the output of a Parser: one logical record from a
// statement, normalized only enough to carry provenance. Amount and date
// remain in their source-native textual form; canonicalization happens
// downstream.
type RawTransaction struct {
	SourceKind  SourceKind
	SourceFile  string
	RecordIndex int // 1-indexed; header lines counted explicitly per source
	RawImage    string

	Date        string // unparsed textual date
	Amount      string // unparsed textual amount
	Description string

	Merchant *string
	Category *string
	Account  *string

	// CurrencyHint and ExchangeRateText are populated only by sources that
	// carry their own currency conversion (multi-currency delimited
	// statements). CurrencyHint empty means the reference currency.
	CurrencyHint     string
	ExchangeRateText string

	Confidence *float64 // parser-declared; nil means "not evaluated"
	Notes      []string // transformation-log entries for per-record anomalies
}

// Provenance records where a Transaction's facts came from and how they
// were interpreted.
type Provenance struct {
	SourceFile        string
	RecordIndex       int
	ExtractedAt       time.Time
	ParserVersion     string
	TransformationLog []string
}

// Transaction is a canonical ledger entry: content-addressed, immutable
// once created. Corrections are expressed as new Events, never by mutating
// this struct in place.
type Transaction struct {
	Identity string // hex-encoded sha256 digest

	Date           string // normalized YYYY-MM-DD
	Amount         decimal.Decimal // signed, reference currency; positive = inflow
	AmountOriginal string
	Currency       string

	Description string
	Merchant    string
	Kind        Kind
	Category    string
	Bank        string // Bank.ID this transaction is attributed to

	Provenance Provenance
	Metadata   map[string]any
}
