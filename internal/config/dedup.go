package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/dedup"
)

// ToDedupConfig parses the YAML-friendly DedupConfig into the decimal-typed
// dedup.Config the dedup engine actually runs on.
func (d DedupConfig) ToDedupConfig() (dedup.Config, error) {
	tolerance, err := decimal.NewFromString(d.FuzzyAmountTolerance)
	if err != nil {
		return dedup.Config{}, fmt.Errorf("parsing fuzzy_amount_tolerance %q: %w", d.FuzzyAmountTolerance, err)
	}
	return dedup.Config{
		FuzzyDateToleranceDays: d.FuzzyDateToleranceDays,
		FuzzyAmountTolerance:   tolerance,
		FuzzyFloor:             d.FuzzyFloor,
		ExactConfidence:        d.ExactConfidence,
		TransferConfidence:     d.TransferConfidence,
	}, nil
}
