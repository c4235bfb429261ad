package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// ruleDoc mirrors the JSON rule object from spec §6: { id, pattern,
// merchant?, category?, transaction_type?, confidence, description?,
// priority }.
type ruleDoc struct {
	ID          string  `json:"id"`
	Pattern     string  `json:"pattern"`
	Merchant    string  `json:"merchant,omitempty"`
	Category    string  `json:"category,omitempty"`
	Kind        string  `json:"transaction_type,omitempty"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description,omitempty"`
	Priority    int     `json:"priority"`
}

// LoadRules reads a JSON array of rule objects from path, validates every
// one, and returns a priority-sorted Engine. Any invalid rule (missing id,
// missing pattern, confidence out of range) rejects the whole file before
// any rule is applied, identifying the offending rule.
func LoadRules(path, version string) (*Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()
	return DecodeRules(f, version)
}

// DecodeRules parses and validates a rules JSON document from r.
func DecodeRules(r io.Reader, version string) (*Engine, error) {
	var docs []ruleDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("parsing rules JSON: %w", err)
	}

	out := make([]model.ClassificationRule, 0, len(docs))
	for i, d := range docs {
		rule := model.ClassificationRule{
			ID:          d.ID,
			Pattern:     d.Pattern,
			Merchant:    d.Merchant,
			Category:    d.Category,
			Kind:        model.Kind(d.Kind),
			Confidence:  d.Confidence,
			Priority:    d.Priority,
			Description: d.Description,
		}
		if err := Validate(rule, i); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}

	return NewEngine(out, version), nil
}
