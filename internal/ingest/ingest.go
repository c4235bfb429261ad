// Package ingest orchestrates one batch import: parse source files,
// canonicalize each record, classify it, gate it for idempotency, append
// the resulting events, then scan the updated ledger for duplicates.
// Parsing runs across a bounded worker pool (spec §5: no shared mutable
// state between parsers); everything after that funnels through one
// goroutine appending to the event store in file order.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgertrace/ledgertrace/internal/canonical"
	"github.com/ledgertrace/ledgertrace/internal/dedup"
	"github.com/ledgertrace/ledgertrace/internal/eventstore"
	"github.com/ledgertrace/ledgertrace/internal/model"
	"github.com/ledgertrace/ledgertrace/internal/parser"
	"github.com/ledgertrace/ledgertrace/internal/projections"
	"github.com/ledgertrace/ledgertrace/internal/rules"
)

// fileResult is what the parse stage hands back to the serial append
// stage for one input file.
type fileResult struct {
	path string
	raws []model.RawTransaction
	err  error
}

// Run executes one batch ingestion over paths (files or directories) and
// returns a report of what happened. A non-nil error means a fatal
// failure (spec §7): an unreadable event store, or a store I/O failure.
// Per-file structural failures and per-record anomalies are recoverable
// and surface through the returned Report instead.
func Run(
	ctx context.Context,
	store eventstore.Store,
	registry *parser.Registry,
	rulesEngine *rules.Engine,
	dedupEngine *dedup.Engine,
	paths []string,
	opts Options,
) (Report, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return Report{}, fmt.Errorf("resolving input paths: %w", err)
	}

	runID := uuid.NewString()
	log := opts.runLogger(runID, len(files))
	log.Info().Msg("ingest run started")

	report := Report{RulesFileVersion: rulesEngine.Version()}

	seen, err := existingIdentities(ctx, store)
	if err != nil {
		return report, fmt.Errorf("reading existing ledger: %w", err)
	}

	results := parseAll(files, registry, opts.workers(), log)

	canonOpts := canonical.Options{
		ReferenceCurrency: opts.ReferenceCurrency,
		ExtractedAt:       opts.ExtractedAt,
		Bank:              opts.Bank,
	}
	actor := opts.actor()

	for _, res := range results {
		report.FilesProcessed++
		if res.err != nil {
			log.Warn().Str("file", res.path).Err(res.err).Msg("source-structure failure")
			report.Errors = append(report.Errors, FileError{File: res.path, Err: res.err.Error()})
			continue
		}

		events, imported, suppressed := classifyAndGate(res.raws, registry, rulesEngine, canonOpts, actor, seen, log.With().Str("file", res.path).Logger())
		if len(events) > 0 {
			if err := store.Append(ctx, events...); err != nil {
				return report, fmt.Errorf("appending events for %s: %w", res.path, err)
			}
		}
		log.Info().Str("file", res.path).Int("imported", imported).Int("suppressed", suppressed).Msg("file processed")
		report.TransactionsImported += imported
		report.DuplicatesSuppressed += suppressed
	}

	if !opts.SkipDuplicateScan {
		dupEvents, err := scanForDuplicates(ctx, store, dedupEngine, actor, opts.ExtractedAt, log)
		if err != nil {
			return report, fmt.Errorf("scanning for duplicates: %w", err)
		}
		if len(dupEvents) > 0 {
			if err := store.Append(ctx, dupEvents...); err != nil {
				return report, fmt.Errorf("appending duplicate annotations: %w", err)
			}
		}
		log.Info().Int("annotations", len(dupEvents)).Msg("duplicate scan complete")
	}

	log.Info().
		Int("transactions_imported", report.TransactionsImported).
		Int("duplicates_suppressed", report.DuplicatesSuppressed).
		Msg("ingest run complete")

	return report, nil
}

// existingIdentities builds the set of identities already present in the
// event log, so the idempotency gate can recognize a re-import.
func existingIdentities(ctx context.Context, store eventstore.Store) (map[string]bool, error) {
	events, err := store.Events(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := projections.BuildLedger(events)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, ledger.Len())
	for _, tx := range ledger.Transactions() {
		seen[tx.Identity] = true
	}
	return seen, nil
}

// parseAll runs source detection and parsing for every file across a
// bounded worker pool, returning results in input order regardless of
// completion order.
func parseAll(files []string, registry *parser.Registry, workers int, log zerolog.Logger) []fileResult {
	results := make([]fileResult, len(files))
	jobs := make(chan int)

	var active int
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		active++
		go func() {
			defer func() { done <- struct{}{} }()
			for i := range jobs {
				raws, err := parseFile(files[i], registry, log)
				results[i] = fileResult{path: files[i], raws: raws, err: err}
			}
		}()
	}

	go func() {
		for i := range files {
			jobs <- i
		}
		close(jobs)
	}()

	for ; active > 0; active-- {
		<-done
	}
	return results
}

// parseFile detects a file's source kind and runs its parser. Any failure
// here is a source-structure failure: the file is skipped, the batch
// continues.
func parseFile(path string, registry *parser.Registry, log zerolog.Logger) ([]model.RawTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	firstLine, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	kind, err := parser.DetectSource(path, firstLine)
	if err != nil {
		return nil, err
	}

	p := registry.Get(kind)
	if p == nil {
		return nil, fmt.Errorf("no parser registered for source kind %q", kind)
	}

	raws, err := p.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Str("source_kind", string(kind)).Int("records", len(raws)).Msg("file parsed")
	return raws, nil
}

// classifyAndGate canonicalizes and classifies every raw record from one
// file, applies the idempotency gate, and returns the events to append
// along with import/suppression counts. seen is mutated in place so later
// files in the same batch also gate against records imported earlier in
// this run.
func classifyAndGate(
	raws []model.RawTransaction,
	registry *parser.Registry,
	rulesEngine *rules.Engine,
	canonOpts canonical.Options,
	actor string,
	seen map[string]bool,
	log zerolog.Logger,
) (events []model.Event, imported int, suppressed int) {
	for _, raw := range raws {
		p := registry.Get(raw.SourceKind)
		if p == nil {
			continue
		}
		canonOpts.ParserVersion = p.Version()

		tx, err := canonical.Canonicalize(raw, p, canonOpts)
		if err != nil {
			continue
		}

		result := rulesEngine.Classify(tx.Description)
		if result.RuleID != "" {
			applyClassification(&tx, result)
		}

		if seen[tx.Identity] {
			suppressed++
			log.Debug().Str("identity", tx.Identity).Msg("duplicate import suppressed")
			continue
		}
		seen[tx.Identity] = true
		log.Debug().Str("identity", tx.Identity).Str("rule_id", result.RuleID).Msg("transaction classified")

		now := canonOpts.ExtractedAt
		payload, err := projections.EncodeTransactionImported(tx)
		if err != nil {
			continue
		}
		events = append(events, model.Event{
			ID:         uuid.NewString(),
			Timestamp:  now,
			Kind:       model.EventTransactionImported,
			EntityKind: model.EntityTransaction,
			EntityID:   tx.Identity,
			Payload:    payload,
			Actor:      actor,
		})
		imported++

		if result.RuleID != "" {
			classPayload, err := projections.EncodeClassificationApplied(projections.ClassificationPayload{
				Identity:   tx.Identity,
				Category:   result.Category,
				Kind:       result.Kind,
				Merchant:   result.Merchant,
				Confidence: result.Confidence,
				RuleID:     result.RuleID,
			})
			if err == nil {
				events = append(events, model.Event{
					ID:         uuid.NewString(),
					Timestamp:  now.Add(time.Nanosecond),
					Kind:       model.EventClassificationApplied,
					EntityKind: model.EntityTransaction,
					EntityID:   tx.Identity,
					Payload:    classPayload,
					Actor:      actor,
				})
			}
		}
	}
	return events, imported, suppressed
}

// applyClassification overrides a canonicalized Transaction's merchant,
// category and kind with a matched rule's higher-confidence assignment
// (spec §4.2), then recomputes Identity since merchant participates in
// the hash.
func applyClassification(tx *model.Transaction, result model.ClassificationResult) {
	if result.Merchant != "" {
		tx.Merchant = result.Merchant
	}
	if result.Category != "" {
		tx.Category = result.Category
	}
	if result.Kind != "" {
		tx.Kind = result.Kind
	}
	tx.Identity = canonical.Identity(tx.Date, tx.Amount, tx.Merchant, tx.Bank)
}

// scanForDuplicates rebuilds the ledger and duplicate graph from the
// current event log, runs the dedup engine over the full transaction set,
// and returns duplicate-detected events for any pair not already
// annotated.
func scanForDuplicates(ctx context.Context, store eventstore.Store, engine *dedup.Engine, actor string, decidedAt time.Time, log zerolog.Logger) ([]model.Event, error) {
	allEvents, err := store.Events(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := projections.BuildLedger(allEvents)
	if err != nil {
		return nil, err
	}
	graph, err := projections.BuildDuplicateGraph(allEvents)
	if err != nil {
		return nil, err
	}

	annotations := engine.FindDuplicates(ledger.Transactions(), actor, decidedAt)

	var events []model.Event
	for _, ann := range annotations {
		if len(graph.For(ann.TransactionA)) > 0 && alreadyAnnotated(graph, ann) {
			continue
		}
		payload, err := projections.EncodeDuplicateAnnotation(ann)
		if err != nil {
			continue
		}
		log.Debug().
			Str("transaction_a", ann.TransactionA).
			Str("transaction_b", ann.TransactionB).
			Str("strategy", string(ann.Strategy)).
			Float64("confidence", ann.Confidence).
			Msg("duplicate annotated")
		events = append(events, model.Event{
			ID:         uuid.NewString(),
			Timestamp:  decidedAt,
			Kind:       model.EventDuplicateDetected,
			EntityKind: model.EntityDuplicate,
			EntityID:   ann.TransactionA,
			Payload:    payload,
			Actor:      actor,
		})
	}
	return events, nil
}

func alreadyAnnotated(graph *projections.DuplicateGraph, ann model.DuplicateAnnotation) bool {
	for _, existing := range graph.For(ann.TransactionA) {
		if existing.TransactionB == ann.TransactionB || existing.TransactionA == ann.TransactionB {
			return true
		}
	}
	return false
}
