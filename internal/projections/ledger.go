package projections

import (
	"fmt"
	"sort"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// Ledger is the transaction-ledger projection: one Transaction per
// identity, with classification-applied events folded in on top of the
// imported facts.
type Ledger struct {
	byIdentity map[string]model.Transaction
}

// Transactions returns every ledgered transaction, sorted by identity for
// a deterministic, reproducible ordering.
func (l *Ledger) Transactions() []model.Transaction {
	out := make([]model.Transaction, 0, len(l.byIdentity))
	for _, tx := range l.byIdentity {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}

// Get returns the transaction for an identity.
func (l *Ledger) Get(identity string) (model.Transaction, bool) {
	tx, ok := l.byIdentity[identity]
	return tx, ok
}

// Len returns the number of distinct transaction identities in the ledger.
func (l *Ledger) Len() int { return len(l.byIdentity) }

// classificationState tracks, per identity, the most recent system-authored
// and human-authored classification. A human decision takes precedence
// regardless of when either event was appended (spec §4.5, §9 Open
// Question (a), resolved in SPEC_FULL.md: human wins unconditionally).
type classificationState struct {
	system *ClassificationPayload
	human  *ClassificationPayload
}

// LedgerState is the mutable accumulator the fold operates over. Both
// BuildLedger (rebuild-from-empty) and incremental callers drive the same
// Apply method, so the two paths can never diverge.
type LedgerState struct {
	transactions    map[string]model.Transaction
	classifications map[string]*classificationState
}

// NewLedgerState returns an empty fold accumulator.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		transactions:    make(map[string]model.Transaction),
		classifications: make(map[string]*classificationState),
	}
}

// Apply folds one more event into the accumulator. Event kinds the ledger
// projection does not care about (bank/duplicate events) are ignored.
func (s *LedgerState) Apply(e model.Event) error {
	switch e.Kind {
	case model.EventTransactionImported:
		tx, err := DecodeTransactionImported(e.Payload)
		if err != nil {
			return err
		}
		s.transactions[tx.Identity] = tx

	case model.EventClassificationApplied:
		p, err := DecodeClassificationApplied(e.Payload)
		if err != nil {
			return err
		}
		st, ok := s.classifications[p.Identity]
		if !ok {
			st = &classificationState{}
			s.classifications[p.Identity] = st
		}
		if e.IsSystemActor() {
			st.system = &p
		} else {
			st.human = &p
		}
	}
	return nil
}

// Ledger materializes the current fold state into a Ledger, applying each
// identity's winning classification on top of its imported facts.
func (s *LedgerState) Ledger() *Ledger {
	out := make(map[string]model.Transaction, len(s.transactions))
	for id, tx := range s.transactions {
		if st, ok := s.classifications[id]; ok {
			tx = applyClassification(tx, winningClassification(st))
		}
		out[id] = tx
	}
	return &Ledger{byIdentity: out}
}

func winningClassification(st *classificationState) *ClassificationPayload {
	if st.human != nil {
		return st.human
	}
	return st.system
}

func applyClassification(tx model.Transaction, p *ClassificationPayload) model.Transaction {
	if p == nil {
		return tx
	}
	if p.Category != "" {
		tx.Category = p.Category
	}
	if p.Kind != "" {
		tx.Kind = p.Kind
	}
	if p.Merchant != "" {
		tx.Merchant = p.Merchant
	}
	if tx.Metadata == nil {
		tx.Metadata = map[string]any{}
	}
	tx.Metadata["classification_confidence"] = p.Confidence
	if p.RuleID != "" {
		tx.Metadata["classification_rule_id"] = p.RuleID
	}
	return tx
}

// BuildLedger folds an entire ordered event slice from empty. It is
// defined purely in terms of LedgerState so it is byte-identical (modulo
// ordering of equal-key entries) to driving the same events through
// LedgerState incrementally.
func BuildLedger(events []model.Event) (*Ledger, error) {
	state := NewLedgerState()
	for i, e := range events {
		if err := state.Apply(e); err != nil {
			return nil, fmt.Errorf("applying event %d (%s): %w", i, e.ID, err)
		}
	}
	return state.Ledger(), nil
}
