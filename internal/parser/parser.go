// Package parser implements the polymorphic parser framework: a minimal
// required contract plus small capability interfaces composed à la carte
// per source, instead of a deep inheritance hierarchy.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// ErrStructural marks a source-structure failure (malformed container,
// unknown column layout). The batch aborts that file but continues with
// the rest.
type ErrStructural struct {
	File string
	Err  error
}

func (e *ErrStructural) Error() string {
	return fmt.Sprintf("structural error in %s: %v", e.File, e.Err)
}

func (e *ErrStructural) Unwrap() error { return e.Err }

// ErrUnsupportedSource is returned by stub parsers registered for a
// SourceKind whose format is not yet implemented.
var ErrUnsupportedSource = fmt.Errorf("parser: source format not yet implemented")

// Parser is the single required contract. Everything else is optional.
type Parser interface {
	// Parse reads one logical statement and emits each record in source
	// order. It fails fast on structural errors; per-record anomalies
	// become low-confidence RawTransactions instead of errors.
	Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error)
	SourceKind() model.SourceKind
	Version() string
}

// MerchantExtractor is an optional capability: description text -> an
// optional normalized merchant.
type MerchantExtractor interface {
	ExtractMerchant(description string) (string, bool)
}

// KindClassifier is an optional capability: (description, signed amount)
// -> transaction kind.
type KindClassifier interface {
	ClassifyKind(description string, amount decimal.Decimal) model.Kind
}

// Registry holds named parsers keyed by SourceKind.
type Registry struct {
	parsers map[model.SourceKind]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.SourceKind]Parser)}
}

// Register adds a parser. Panics on duplicate SourceKind.
func (r *Registry) Register(p Parser) {
	k := p.SourceKind()
	if _, ok := r.parsers[k]; ok {
		panic("duplicate parser source kind: " + string(k))
	}
	r.parsers[k] = p
}

// Get returns the parser for a SourceKind, or nil.
func (r *Registry) Get(kind model.SourceKind) Parser {
	return r.parsers[kind]
}

// DefaultRegistry returns a registry with every built-in parser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CheckingAccountParser{})
	r.Register(&CreditCardParser{})
	r.Register(&PaymentProcessorParser{})
	r.Register(&MultiCurrencyParser{})
	r.Register(&UnsupportedParser{})
	return r
}

// filenameVocabulary maps a case-insensitive filename substring to the
// SourceKind it identifies.
var filenameVocabulary = []struct {
	token string
	kind  model.SourceKind
}{
	{"checking", model.SourceCheckingAccount},
	{"chase", model.SourceCheckingAccount},
	{"credit", model.SourceCreditCard},
	{"card", model.SourceCreditCard},
	{"stripe", model.SourcePaymentProcessor},
	{"processor", model.SourcePaymentProcessor},
	{"wise", model.SourceMultiCurrency},
	{"multicurrency", model.SourceMultiCurrency},
	{"scotia", model.SourceUnsupported},
}

// DetectSource inspects filename tokens first, falling back to a content
// sniff of the first line of the file when the filename is ambiguous. It
// fails with a recoverable error when no source is identified.
func DetectSource(filename string, firstLine string) (model.SourceKind, error) {
	lower := strings.ToLower(filename)
	for _, v := range filenameVocabulary {
		if strings.Contains(lower, v.token) {
			return v.kind, nil
		}
	}

	trimmed := strings.TrimSpace(firstLine)
	switch {
	case strings.HasPrefix(trimmed, `{"object":"list"`) || strings.Contains(trimmed, `"object": "list"`):
		return model.SourcePaymentProcessor, nil
	case trimmed == "Date,Description,Amount":
		return model.SourceCheckingAccount, nil
	case trimmed == "Date,Description,Amount,Category,Merchant":
		return model.SourceCreditCard, nil
	case strings.HasPrefix(trimmed, "ID,Date,Amount,Currency,Description,PayeeName"):
		return model.SourceMultiCurrency, nil
	}

	return "", fmt.Errorf("could not detect source type from %q", filename)
}
