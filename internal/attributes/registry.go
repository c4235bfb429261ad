package attributes

import "fmt"

// Registry is the single semantic source of truth: identifier -> definition.
// Attributes accrete; they are never removed, and re-registering an
// identifier with a different definition fails.
type Registry struct {
	byID   map[string]Definition
	byName map[string]string // name -> id
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Definition),
		byName: make(map[string]string),
	}
}

// NewCoreRegistry returns a registry pre-populated with the core financial
// attributes every Transaction-shaped entity draws from.
func NewCoreRegistry() *Registry {
	r := NewRegistry()
	for _, d := range coreDefinitions() {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a definition. It fails if id is already registered with a
// different definition.
func (r *Registry) Register(d Definition) error {
	if existing, ok := r.byID[d.ID]; ok {
		if existing.Name != d.Name || existing.Type != d.Type {
			return fmt.Errorf("attribute %s already registered with a different definition", d.ID)
		}
		return nil
	}
	r.byID[d.ID] = d
	r.byName[d.Name] = d.ID
	return nil
}

// Get returns a definition by identifier.
func (r *Registry) Get(id string) (Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// GetByName returns a definition by human name.
func (r *Registry) GetByName(name string) (Definition, bool) {
	id, ok := r.byName[name]
	if !ok {
		return Definition{}, false
	}
	d, ok := r.byID[id]
	return d, ok
}

// List returns every registered definition.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out
}

// Count returns the number of registered attributes.
func (r *Registry) Count() int {
	return len(r.byID)
}

func coreDefinitions() []Definition {
	return []Definition{
		Definition{ID: "attr:date", Name: "date", Type: TypeTimestamp}.
			WithDescription("transaction date - when the transaction occurred").
			WithRule(Required()).
			WithProvenance("extracted from source document").
			WithExample("2024-01-15"),

		Definition{ID: "attr:extracted_at", Name: "extracted_at", Type: TypeTimestamp}.
			WithDescription("when this data was extracted from source").
			WithRule(Required()).
			WithProvenance("set by parser at extraction time"),

		Definition{ID: "attr:amount", Name: "amount", Type: TypeDecimal}.
			WithDescription("transaction amount in the reference currency").
			WithRule(Required()).
			WithRule(NonZero()).
			WithProvenance("extracted and normalized from source").
			WithExample("45.99").WithExample("-120.50"),

		Definition{ID: "attr:amount_original", Name: "amount_original", Type: TypeText}.
			WithDescription("original amount string from source, before parsing").
			WithProvenance("raw value from source document"),

		Definition{ID: "attr:currency", Name: "currency", Type: TypeText}.
			WithDescription("currency code").
			WithRule(Pattern("^[A-Z]{3}$")).
			WithProvenance("extracted from source or inferred").
			WithExample("USD").WithExample("EUR"),

		Definition{ID: "attr:description", Name: "description", Type: TypeText}.
			WithDescription("transaction description from source").
			WithRule(Required()).
			WithRule(NonEmpty()).
			WithProvenance("raw description from source document"),

		Definition{ID: "attr:merchant", Name: "merchant", Type: TypeText}.
			WithDescription("extracted merchant name").
			WithProvenance("extracted via pattern matching from description"),

		Definition{ID: "attr:transaction_kind", Name: "transaction_kind", Type: TypeEnum}.
			WithDescription("transaction kind classification").
			WithRule(Pattern("^(expense|income|card-payment|transfer)$")).
			WithProvenance("classified by parser or rule engine"),

		Definition{ID: "attr:category", Name: "category", Type: TypeText}.
			WithDescription("transaction category").
			WithProvenance("classified by rules"),

		Definition{ID: "attr:source_file", Name: "source_file", Type: TypeText}.
			WithDescription("original source file name").
			WithRule(Required()).
			WithRule(NonEmpty()).
			WithProvenance("parser sets this from filename"),

		Definition{ID: "attr:source_line", Name: "source_line", Type: TypeInteger}.
			WithDescription("line or record index in the source file").
			WithRule(Required()).
			WithRule(Positive()).
			WithProvenance("parser tracks record index during parsing"),

		Definition{ID: "attr:parser_version", Name: "parser_version", Type: TypeText}.
			WithDescription("version of parser that extracted this record").
			WithProvenance("parser version string"),

		Definition{ID: "attr:account_name", Name: "account_name", Type: TypeText}.
			WithDescription("account name").
			WithProvenance("from source or inferred"),

		Definition{ID: "attr:account_number", Name: "account_number", Type: TypeText}.
			WithDescription("account number, typically last four digits").
			WithProvenance("from source"),

		Definition{ID: "attr:bank", Name: "bank", Type: TypeText}.
			WithDescription("bank or financial institution").
			WithProvenance("from source type or filename"),

		Definition{ID: "attr:confidence_score", Name: "confidence_score", Type: TypeDecimal}.
			WithDescription("confidence score for classification").
			WithRule(Range(0.0, 1.0)).
			WithProvenance("calculated by classifier"),

		Definition{ID: "attr:verified", Name: "verified", Type: TypeBoolean}.
			WithDescription("whether transaction has been manually verified").
			WithProvenance("set by user"),

		Definition{ID: "attr:verified_by", Name: "verified_by", Type: TypeText}.
			WithDescription("who verified this transaction").
			WithProvenance("set when user verifies"),

		Definition{ID: "attr:verified_at", Name: "verified_at", Type: TypeTimestamp}.
			WithDescription("when transaction was verified").
			WithProvenance("set when user verifies"),
	}
}
