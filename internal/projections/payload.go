// Package projections implements pure folds over an ordered event slice,
// producing the queryable views spec §4.5 describes: the transaction
// ledger, by-attribute indexes, and the duplicate graph. Every projection
// here is a deterministic function of the events it folds; nothing is
// mutated in place, and rebuilding from empty always agrees with an
// incremental fold over the same history.
package projections

import (
	"encoding/json"
	"fmt"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// ClassificationPayload is the JSON payload of a classification-applied
// event: everything needed to reproduce a rule-engine (or human) decision
// without consulting current state.
type ClassificationPayload struct {
	Identity   string     `json:"identity"`
	Category   string     `json:"category,omitempty"`
	Kind       model.Kind `json:"transaction_kind,omitempty"`
	Merchant   string     `json:"merchant,omitempty"`
	Confidence float64    `json:"confidence"`
	RuleID     string     `json:"rule_id,omitempty"`
}

// VerificationPayload is the JSON payload of a verification-recorded
// event.
type VerificationPayload struct {
	Identity   string `json:"identity"`
	Verified   bool   `json:"verified"`
	VerifiedBy string `json:"verified_by"`
	VerifiedAt string `json:"verified_at"`
}

// EncodeTransactionImported builds the payload for a transaction-imported
// event: the full canonical Transaction.
func EncodeTransactionImported(tx model.Transaction) ([]byte, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction-imported payload: %w", err)
	}
	return data, nil
}

// DecodeTransactionImported parses a transaction-imported event payload.
func DecodeTransactionImported(payload []byte) (model.Transaction, error) {
	var tx model.Transaction
	if err := json.Unmarshal(payload, &tx); err != nil {
		return model.Transaction{}, fmt.Errorf("decoding transaction-imported payload: %w", err)
	}
	return tx, nil
}

// EncodeClassificationApplied builds the payload for a
// classification-applied event.
func EncodeClassificationApplied(p ClassificationPayload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding classification-applied payload: %w", err)
	}
	return data, nil
}

// DecodeClassificationApplied parses a classification-applied event
// payload.
func DecodeClassificationApplied(payload []byte) (ClassificationPayload, error) {
	var p ClassificationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return ClassificationPayload{}, fmt.Errorf("decoding classification-applied payload: %w", err)
	}
	return p, nil
}

// EncodeDuplicateAnnotation builds the payload for a duplicate-detected or
// duplicate-marked event.
func EncodeDuplicateAnnotation(a model.DuplicateAnnotation) ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding duplicate annotation payload: %w", err)
	}
	return data, nil
}

// DecodeDuplicateAnnotation parses a duplicate-detected/duplicate-marked
// event payload.
func DecodeDuplicateAnnotation(payload []byte) (model.DuplicateAnnotation, error) {
	var a model.DuplicateAnnotation
	if err := json.Unmarshal(payload, &a); err != nil {
		return model.DuplicateAnnotation{}, fmt.Errorf("decoding duplicate annotation payload: %w", err)
	}
	return a, nil
}

// EncodeBank builds the payload for a bank-registered/bank-updated event.
func EncodeBank(b model.Bank) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding bank payload: %w", err)
	}
	return data, nil
}

// DecodeBank parses a bank-registered/bank-updated event payload.
func DecodeBank(payload []byte) (model.Bank, error) {
	var b model.Bank
	if err := json.Unmarshal(payload, &b); err != nil {
		return model.Bank{}, fmt.Errorf("decoding bank payload: %w", err)
	}
	return b, nil
}
