package dedup

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// checkFuzzy implements spec §4.4's fuzzy strategy: date difference within
// tolerance, amount difference within tolerance, merchants similar by
// substring containment or a shared alphanumeric token of length >= 4 that
// is not purely digits. Confidence is a weighted blend (date 30%, amount
// 40%, merchant 30%) floored at the configured fuzzy floor.
func (e *Engine) checkFuzzy(a, b model.Transaction, actor string, decidedAt time.Time) (model.DuplicateAnnotation, bool) {
	dateA, ok := parseNormalizedDate(a.Date)
	if !ok {
		return model.DuplicateAnnotation{}, false
	}
	dateB, ok := parseNormalizedDate(b.Date)
	if !ok {
		return model.DuplicateAnnotation{}, false
	}

	dateDiffDays := int(dateA.Sub(dateB).Hours() / 24)
	if dateDiffDays < 0 {
		dateDiffDays = -dateDiffDays
	}
	if dateDiffDays > e.cfg.FuzzyDateToleranceDays {
		return model.DuplicateAnnotation{}, false
	}

	amountDiff := a.Amount.Sub(b.Amount).Abs()
	if amountDiff.GreaterThan(e.cfg.FuzzyAmountTolerance) {
		return model.DuplicateAnnotation{}, false
	}

	merchantA := strings.ToLower(a.Merchant)
	merchantB := strings.ToLower(b.Merchant)
	zeroTolerance := e.cfg.FuzzyDateToleranceDays == 0 && e.cfg.FuzzyAmountTolerance.IsZero()
	if zeroTolerance {
		// At zero date/amount tolerance the fuzzy matcher must degenerate
		// to Exact's own merchant rule (equal under case-folding), not
		// merely similar — otherwise fuzzy would be strictly looser than
		// exact even when every numeric axis has collapsed to exact.
		if merchantA != merchantB {
			return model.DuplicateAnnotation{}, false
		}
	} else if !merchantsSimilar(merchantA, merchantB) {
		return model.DuplicateAnnotation{}, false
	}

	dateScore := 1.0 - float64(dateDiffDays)/(float64(e.cfg.FuzzyDateToleranceDays)+1.0)

	tolF, _ := e.cfg.FuzzyAmountTolerance.Float64()
	diffF, _ := amountDiff.Float64()
	amountScore := 1.0 - diffF/(tolF+0.01)

	merchantScore := 0.85
	if merchantA == merchantB {
		merchantScore = 1.0
	}

	confidence := dateScore*0.3 + amountScore*0.4 + merchantScore*0.3
	if confidence < e.cfg.FuzzyFloor {
		confidence = e.cfg.FuzzyFloor
	}

	return model.DuplicateAnnotation{
		TransactionA: a.Identity,
		TransactionB: b.Identity,
		Strategy:     model.StrategyFuzzy,
		Confidence:   confidence,
		Reason: fmt.Sprintf("fuzzy match: %s ~ %s | $%s ~ $%s | %s ~ %s",
			a.Date, b.Date, a.Amount.Abs().StringFixed(2), b.Amount.Abs().StringFixed(2), a.Merchant, b.Merchant),
		Actor:     actor,
		DecidedAt: decidedAt,
	}, true
}

// merchantsSimilar reports whether two already-lowercased merchant strings
// are similar under spec §4.4: one contains the other, or they share an
// alphanumeric token of length >= 4 that is not purely digits.
func merchantsSimilar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	tokensA := significantTokens(a)
	tokensB := significantTokens(b)
	for _, ta := range tokensA {
		for _, tb := range tokensB {
			if ta == tb {
				return true
			}
		}
	}
	return false
}

func significantTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) < 4 {
			continue
		}
		if isAllDigits(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
