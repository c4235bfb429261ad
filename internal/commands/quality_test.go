package commands

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertrace/ledgertrace/internal/attributes"
	"github.com/ledgertrace/ledgertrace/internal/model"
	"github.com/ledgertrace/ledgertrace/internal/projections"
)

func TestRunQualityCheck_CleanTransactionHasNoViolations(t *testing.T) {
	tx := model.Transaction{
		Identity:    "abc123",
		Date:        "2024-01-15",
		Amount:      decimal.NewFromFloat(-45.99),
		Description: "STARBUCKS",
		Merchant:    "Starbucks",
		Kind:        model.KindExpense,
		Provenance: model.Provenance{
			SourceFile:  "checking.csv",
			RecordIndex: 2,
			ExtractedAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
	}
	payload, err := projections.EncodeTransactionImported(tx)
	require.NoError(t, err)

	ledger, err := projections.BuildLedger([]model.Event{
		{Kind: model.EventTransactionImported, EntityID: tx.Identity, Payload: payload, Actor: "system"},
	})
	require.NoError(t, err)

	violations := runQualityCheck(ledger, attributes.NewCoreRegistry())
	assert.Empty(t, violations)
}

func TestRunQualityCheck_MissingSourceFileFailsShapeAndContext(t *testing.T) {
	tx := model.Transaction{
		Identity:    "def456",
		Date:        "2024-01-15",
		Amount:      decimal.NewFromFloat(-45.99),
		Description: "STARBUCKS",
		Provenance: model.Provenance{
			RecordIndex: 3,
			ExtractedAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
	}
	payload, err := projections.EncodeTransactionImported(tx)
	require.NoError(t, err)

	ledger, err := projections.BuildLedger([]model.Event{
		{Kind: model.EventTransactionImported, EntityID: tx.Identity, Payload: payload, Actor: "system"},
	})
	require.NoError(t, err)

	violations := runQualityCheck(ledger, attributes.NewCoreRegistry())
	require.NotEmpty(t, violations)

	foundShapeViolation := false
	foundContextFailure := false
	for _, v := range violations {
		if v == "def456: shape violation: attr:source_file: required attribute is missing" {
			foundShapeViolation = true
		}
		if v == "def456: fails import-time context, missing [attr:source_file]" {
			foundContextFailure = true
		}
	}
	assert.True(t, foundShapeViolation, "expected a shape violation for the missing source file, got: %v", violations)
	assert.True(t, foundContextFailure, "expected an import-time context failure, got: %v", violations)
}
