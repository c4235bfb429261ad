package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertrace/ledgertrace/internal/dedup"
	"github.com/ledgertrace/ledgertrace/internal/eventstore"
	"github.com/ledgertrace/ledgertrace/internal/logging"
	"github.com/ledgertrace/ledgertrace/internal/parser"
	"github.com/ledgertrace/ledgertrace/internal/rules"
)

func writeCheckingFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const checkingBody = "Date,Description,Amount\n" +
	"01/15/2024,STARBUCKS,-$45.99\n" +
	"01/15/2024,AMAZON,-$120.50\n" +
	"01/15/2024,PAYROLL,$2000.00\n"

func emptyRulesEngine(t *testing.T) *rules.Engine {
	t.Helper()
	return rules.NewEngine(nil, "v0")
}

func TestRun_IdempotentImport(t *testing.T) {
	dir := t.TempDir()
	path := writeCheckingFile(t, dir, "checking.csv", checkingBody)

	store := eventstore.NewMemoryStore()
	defer store.Close()
	registry := parser.DefaultRegistry()
	rulesEngine := emptyRulesEngine(t)
	dedupEngine := dedup.NewEngine(dedup.DefaultConfig())

	opts := Options{Bank: "primary-checking", ExtractedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), SkipDuplicateScan: true}

	report1, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{path}, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, report1.TransactionsImported)
	assert.Equal(t, 0, report1.DuplicatesSuppressed)

	report2, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{path}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, report2.TransactionsImported)
	assert.Equal(t, 3, report2.DuplicatesSuppressed)

	events, err := store.Events(context.Background())
	require.NoError(t, err)
	imported := 0
	for _, e := range events {
		if e.Kind == "transaction-imported" {
			imported++
		}
	}
	assert.Equal(t, 3, imported)
}

func TestRun_RulePriorityClassification(t *testing.T) {
	dir := t.TempDir()
	body := "Date,Description,Amount\n01/15/2024,AMAZON.COM MARKETPLACE US,-$12.34\n"
	path := writeCheckingFile(t, dir, "checking.csv", body)

	ruleJSON := `[
		{"id":"amzn-mkt","pattern":"AMAZON.COM MARKETPLACE*","category":"Online Shopping","confidence":0.98,"priority":100},
		{"id":"amzn","pattern":"AMAZON*","category":"Shopping","confidence":0.90,"priority":10}
	]`
	rulesEngine, err := rules.DecodeRules(strings.NewReader(ruleJSON), "v1")
	require.NoError(t, err)

	store := eventstore.NewMemoryStore()
	defer store.Close()
	registry := parser.DefaultRegistry()
	dedupEngine := dedup.NewEngine(dedup.DefaultConfig())

	opts := Options{Bank: "primary-checking", ExtractedAt: time.Now(), SkipDuplicateScan: true}
	report, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{path}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TransactionsImported)

	events, err := store.Events(context.Background())
	require.NoError(t, err)

	var sawClassification bool
	for _, e := range events {
		if e.Kind == "classification-applied" {
			sawClassification = true
			assert.Contains(t, string(e.Payload), "amzn-mkt")
			assert.Contains(t, string(e.Payload), "Online Shopping")
		}
	}
	assert.True(t, sawClassification)
}

func TestRun_StructuralFailureReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	bad := writeCheckingFile(t, dir, "checking.csv", "not,a,header\n1,2,3\n")

	store := eventstore.NewMemoryStore()
	defer store.Close()
	registry := parser.DefaultRegistry()
	rulesEngine := emptyRulesEngine(t)
	dedupEngine := dedup.NewEngine(dedup.DefaultConfig())

	opts := Options{Bank: "primary-checking", ExtractedAt: time.Now(), SkipDuplicateScan: true}
	report, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{bad}, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TransactionsImported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, bad, report.Errors[0].File)
}

func TestRun_DuplicateScanEmitsTransferPairAnnotation(t *testing.T) {
	dir := t.TempDir()
	body := "Date,Description,Amount\n" +
		"12/25/2024,Transfer to Second,-$1000.00\n" +
		"12/25/2024,Transfer from First,$1000.00\n"
	path := writeCheckingFile(t, dir, "checking.csv", body)

	store := eventstore.NewMemoryStore()
	defer store.Close()
	registry := parser.DefaultRegistry()
	rulesEngine := emptyRulesEngine(t)
	dedupEngine := dedup.NewEngine(dedup.DefaultConfig())

	opts := Options{Bank: "primary-checking", ExtractedAt: time.Now()}
	report, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{path}, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TransactionsImported)

	events, err := store.Events(context.Background())
	require.NoError(t, err)

	var sawDuplicate bool
	for _, e := range events {
		if e.Kind == "duplicate-detected" {
			sawDuplicate = true
			assert.Contains(t, string(e.Payload), "transfer-pair")
		}
	}
	assert.True(t, sawDuplicate)
}

func TestRun_LogsStructuredFieldsPerStage(t *testing.T) {
	dir := t.TempDir()
	path := writeCheckingFile(t, dir, "checking.csv", checkingBody)

	store := eventstore.NewMemoryStore()
	defer store.Close()
	registry := parser.DefaultRegistry()
	rulesEngine := emptyRulesEngine(t)
	dedupEngine := dedup.NewEngine(dedup.DefaultConfig())

	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "debug")

	opts := Options{
		Bank:              "primary-checking",
		ExtractedAt:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SkipDuplicateScan: true,
		Logger:            &log,
	}
	_, err := Run(context.Background(), store, registry, rulesEngine, dedupEngine, []string{path}, opts)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run_id")
	assert.Contains(t, out, `"files":1`)
	assert.Contains(t, out, "checking.csv")
	assert.Contains(t, out, "source_kind")
	assert.Contains(t, out, "identity")
}
