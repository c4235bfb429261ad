// Package contexts declares, per use-case, which attributes a Transaction
// must carry. Satisfaction is computed from an instance, never stored.
package contexts

import "github.com/ledgertrace/ledgertrace/internal/shapes"

// Context names one of the seven use-cases a Transaction may be evaluated
// against.
type Context string

const (
	Display      Context = "display"
	Audit        Context = "audit"
	Reporting    Context = "reporting"
	ImportTime   Context = "import-time"
	Verification Context = "verification"
	TrainingData Context = "training-data"
	QualityCheck Context = "quality-check"
)

var requirements = map[Context][]string{
	Display: {
		"attr:date", "attr:merchant", "attr:amount", "attr:transaction_kind",
	},
	Audit: {
		"attr:source_file", "attr:source_line", "attr:extracted_at", "attr:parser_version",
	},
	Reporting: {
		"attr:date", "attr:amount", "attr:category", "attr:transaction_kind",
	},
	ImportTime: {
		"attr:date", "attr:amount", "attr:description", "attr:source_file", "attr:source_line",
	},
	Verification: {
		"attr:date", "attr:amount", "attr:description", "attr:confidence_score",
	},
	TrainingData: {
		"attr:merchant", "attr:category", "attr:transaction_kind",
	},
	QualityCheck: {
		"attr:date", "attr:transaction_kind", "attr:source_file", "attr:extracted_at",
	},
}

// Satisfies reports whether instance carries every attribute the context
// requires, plus any context-specific value constraints (TrainingData
// additionally requires verified == true).
func Satisfies(instance shapes.Instance, ctx Context) (bool, []string) {
	var missing []string
	for _, attr := range requirements[ctx] {
		v, ok := instance[attr]
		if !ok || v == nil || v == "" {
			missing = append(missing, attr)
		}
	}
	if ctx == TrainingData {
		if verified, ok := instance["attr:verified"].(bool); !ok || !verified {
			missing = append(missing, "attr:verified (must be true)")
		}
	}
	return len(missing) == 0, missing
}
