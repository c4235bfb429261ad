// Package rules implements the classification rule engine: rules are data,
// loaded from an external JSON file, sorted by descending priority, and
// applied first-match-wins against a target string (normally a
// Transaction's description).
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// ErrInvalidRule marks a rule that failed load-time validation: missing id,
// missing or empty pattern, or confidence out of [0,1]. Rule-file
// invalidity is fatal at startup.
type ErrInvalidRule struct {
	Index  int
	Reason string
}

func (e *ErrInvalidRule) Error() string {
	return fmt.Sprintf("rule %d: %s", e.Index, e.Reason)
}

// Engine holds a priority-sorted rule set and classifies text against it.
type Engine struct {
	rules   []model.ClassificationRule
	version string
}

// NewEngine builds an Engine from an already-validated rule slice, sorting
// by descending priority. Ties keep their original relative order (stable
// sort) so rule-file authoring order breaks ties deterministically.
func NewEngine(rules []model.ClassificationRule, version string) *Engine {
	sorted := append([]model.ClassificationRule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Engine{rules: sorted, version: version}
}

// Validate checks one rule against the load-time requirements from spec §6:
// non-empty id, non-empty pattern, confidence in [0,1].
func Validate(r model.ClassificationRule, index int) error {
	if strings.TrimSpace(r.ID) == "" {
		return &ErrInvalidRule{Index: index, Reason: "missing id"}
	}
	if r.Pattern == "" {
		return &ErrInvalidRule{Index: index, Reason: "missing pattern"}
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return &ErrInvalidRule{Index: index, Reason: fmt.Sprintf("confidence %v out of range [0,1]", r.Confidence)}
	}
	return nil
}

// RuleCount returns the number of loaded rules.
func (e *Engine) RuleCount() int { return len(e.rules) }

// Version returns the rules-file version this engine was built from,
// carried into provenance as rules_file_version.
func (e *Engine) Version() string { return e.version }

// Rules returns the priority-sorted rule set.
func (e *Engine) Rules() []model.ClassificationRule {
	return append([]model.ClassificationRule(nil), e.rules...)
}

// Classify returns the first rule (by descending priority) whose pattern
// matches text. No match yields a zero-confidence result signalling
// "needs manual review": every target attribute absent, RuleID empty.
func (e *Engine) Classify(text string) model.ClassificationResult {
	for _, r := range e.rules {
		if matches(r.Pattern, text) {
			return model.ClassificationResult{
				Merchant:   r.Merchant,
				Category:   r.Category,
				Kind:       r.Kind,
				Confidence: r.Confidence,
				RuleID:     r.ID,
			}
		}
	}
	return model.ClassificationResult{}
}

// matches implements the pattern language from spec §4.3: case-insensitive
// match against text. A pattern without '*' matches as substring
// containment. A pattern with '*' is decomposed into literal fragments
// that must appear in order: the first fragment anchored at the start (if
// non-empty), the last fragment anchored at the end (if non-empty), and
// intermediate fragments found in forward order without backtracking past
// the first match of each. Fragments never overlap one another. Empty text
// never matches.
func matches(pattern, text string) bool {
	p := strings.ToLower(pattern)
	t := strings.ToLower(text)
	if t == "" {
		return false
	}

	if !strings.Contains(p, "*") {
		return strings.Contains(t, p)
	}

	parts := strings.Split(p, "*")

	if parts[0] != "" && !strings.HasPrefix(t, parts[0]) {
		return false
	}
	last := len(parts) - 1
	if parts[last] != "" && !strings.HasSuffix(t, parts[last]) {
		return false
	}

	pos := len(parts[0])
	end := len(t) - len(parts[last])
	if end < pos {
		return false
	}
	for i := 1; i < last; i++ {
		frag := parts[i]
		if frag == "" {
			continue
		}
		idx := strings.Index(t[pos:end], frag)
		if idx < 0 {
			return false
		}
		pos += idx + len(frag)
	}
	return true
}
