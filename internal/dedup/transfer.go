package dedup

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

var transferSumTolerance = decimal.NewFromFloat(0.01)

// checkTransferPair implements spec §4.4's transfer-pair strategy: both
// transactions kind=transfer, same normalized date, amounts opposite-signed
// with magnitude-sum <= 0.01.
func (e *Engine) checkTransferPair(a, b model.Transaction, actor string, decidedAt time.Time) (model.DuplicateAnnotation, bool) {
	if a.Kind != model.KindTransfer || b.Kind != model.KindTransfer {
		return model.DuplicateAnnotation{}, false
	}
	if a.Date != b.Date {
		return model.DuplicateAnnotation{}, false
	}
	if a.Amount.Add(b.Amount).Abs().GreaterThan(transferSumTolerance) {
		return model.DuplicateAnnotation{}, false
	}

	return model.DuplicateAnnotation{
		TransactionA: a.Identity,
		TransactionB: b.Identity,
		Strategy:     model.StrategyTransferPair,
		Confidence:   e.cfg.TransferConfidence,
		Reason:       fmt.Sprintf("transfer pair: %s | $%s <-> $%s", a.Date, a.Amount.StringFixed(2), b.Amount.StringFixed(2)),
		Actor:        actor,
		DecidedAt:    decidedAt,
	}, true
}
