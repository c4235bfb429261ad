package model

import "time"

// DuplicateStrategy names which of the three detection strategies produced
// a DuplicateAnnotation.
type DuplicateStrategy string

const (
	StrategyExact        DuplicateStrategy = "exact"
	StrategyTransferPair  DuplicateStrategy = "transfer-pair"
	StrategyFuzzy         DuplicateStrategy = "fuzzy"
)

// DuplicateAnnotation is a derived statement about two transactions; it
// never causes either Transaction to be mutated or deleted.
type DuplicateAnnotation struct {
	TransactionA string
	TransactionB string
	Strategy     DuplicateStrategy
	Confidence   float64
	Reason       string
	Actor        string
	DecidedAt    time.Time
}
