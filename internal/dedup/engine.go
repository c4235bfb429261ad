// Package dedup implements the three duplicate-detection strategies from
// spec §4.4: exact, transfer-pair, and fuzzy. Each strategy produces zero
// or one DuplicateAnnotation for a given ordered pair of transactions; the
// engine never mutates or removes a transaction, only annotates.
package dedup

import (
	"time"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// Engine scores pairs of transactions against all three strategies.
type Engine struct {
	cfg Config
}

// NewEngine returns an Engine configured with cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// FindDuplicates compares every unordered pair in txs and returns the
// annotations produced in pair-scan order. Each pair yields at most one
// annotation: exact is tried first, then transfer-pair, then fuzzy.
func (e *Engine) FindDuplicates(txs []model.Transaction, actor string, decidedAt time.Time) []model.DuplicateAnnotation {
	var out []model.DuplicateAnnotation
	for i := 0; i < len(txs); i++ {
		for j := i + 1; j < len(txs); j++ {
			a, b := txs[i], txs[j]
			if ann, ok := e.checkExact(a, b, actor, decidedAt); ok {
				out = append(out, ann)
				continue
			}
			if ann, ok := e.checkTransferPair(a, b, actor, decidedAt); ok {
				out = append(out, ann)
				continue
			}
			if ann, ok := e.checkFuzzy(a, b, actor, decidedAt); ok {
				out = append(out, ann)
			}
		}
	}
	return out
}

func parseNormalizedDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
