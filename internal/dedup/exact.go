package dedup

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

var exactAmountTolerance = decimal.NewFromFloat(0.001)

// checkExact implements spec §4.4's exact strategy: same normalized date,
// amount difference magnitude <= 0.001, merchant equal under case-folding.
func (e *Engine) checkExact(a, b model.Transaction, actor string, decidedAt time.Time) (model.DuplicateAnnotation, bool) {
	if a.Date != b.Date {
		return model.DuplicateAnnotation{}, false
	}
	if a.Amount.Sub(b.Amount).Abs().GreaterThan(exactAmountTolerance) {
		return model.DuplicateAnnotation{}, false
	}
	if !strings.EqualFold(a.Merchant, b.Merchant) {
		return model.DuplicateAnnotation{}, false
	}

	return model.DuplicateAnnotation{
		TransactionA: a.Identity,
		TransactionB: b.Identity,
		Strategy:     model.StrategyExact,
		Confidence:   e.cfg.ExactConfidence,
		Reason:       fmt.Sprintf("exact match: %s | $%s | %s", a.Date, a.Amount.Abs().StringFixed(2), a.Merchant),
		Actor:        actor,
		DecidedAt:    decidedAt,
	}, true
}
