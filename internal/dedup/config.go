package dedup

import "github.com/shopspring/decimal"

// Config is the configuration surface from spec §4.4: all fuzzy tolerances
// and the three per-strategy emission thresholds are overridable.
type Config struct {
	// FuzzyDateToleranceDays bounds how many days apart two normalized
	// dates may be and still be considered for fuzzy matching.
	FuzzyDateToleranceDays int
	// FuzzyAmountTolerance bounds how far apart two amounts may be and
	// still be considered for fuzzy matching.
	FuzzyAmountTolerance decimal.Decimal
	// FuzzyFloor is the minimum confidence a fuzzy match is ever reported
	// at, regardless of the weighted blend.
	FuzzyFloor float64

	ExactConfidence    float64
	TransferConfidence float64
}

// DefaultConfig returns the thresholds named in spec §4.4: fuzzy date
// tolerance ±1 day, fuzzy amount tolerance $0.50, fuzzy floor 0.70, exact
// confidence 0.95, transfer-pair confidence 0.90.
func DefaultConfig() Config {
	return Config{
		FuzzyDateToleranceDays: 1,
		FuzzyAmountTolerance:   decimal.NewFromFloat(0.50),
		FuzzyFloor:             0.70,
		ExactConfidence:        0.95,
		TransferConfidence:     0.90,
	}
}
