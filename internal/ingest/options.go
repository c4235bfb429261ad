package ingest

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgertrace/ledgertrace/internal/logging"
)

// Options configures one batch ingestion run.
type Options struct {
	// Bank is the Bank.ID every RawTransaction in this batch is attributed
	// to. A batch ingests from one bank at a time; mixed-bank directories
	// are the caller's responsibility to split.
	Bank string

	// ReferenceCurrency is the currency canonical amounts are expressed
	// in. Empty defaults to "USD" (canonical.Options' own default).
	ReferenceCurrency string

	// Actor tags every event this run produces. Empty defaults to
	// "system", the only actor string the projection layer treats
	// specially.
	Actor string

	// ExtractedAt stamps every Transaction's provenance. Callers supply
	// it explicitly so a re-run with the same inputs is reproducible.
	ExtractedAt time.Time

	// Workers bounds the parse-stage worker pool. <= 0 defaults to 4.
	Workers int

	// SkipDuplicateScan, when set, makes a batch only import. Left unset,
	// the dedup engine runs over the ledger after import and
	// duplicate-detected events are appended for any newly found pair.
	SkipDuplicateScan bool

	// Logger is the base logger this run's structured fields attach to.
	// nil means a disabled (no-op) logger, so callers that don't care
	// about ingest logging (most tests) pay nothing for it.
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

// runLogger tags the base logger with this run's correlation fields
// (spec's ambient-stack promise: every stage logs structured fields
// traceable to one invocation).
func (o Options) runLogger(runID string, fileCount int) zerolog.Logger {
	return logging.WithRun(o.logger(), runID, fileCount)
}

func (o Options) actor() string {
	if o.Actor == "" {
		return "system"
	}
	return o.Actor
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return 4
	}
	return o.Workers
}
