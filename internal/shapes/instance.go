package shapes

import "github.com/ledgertrace/ledgertrace/internal/model"

// FromTransaction flattens a Transaction into the attribute-id -> value
// map that Validate and contexts.Satisfies operate on.
func FromTransaction(tx model.Transaction) Instance {
	inst := Instance{
		"attr:date":        tx.Date,
		"attr:amount":      tx.Amount,
		"attr:description": tx.Description,
		"attr:source_file": tx.Provenance.SourceFile,
		"attr:source_line": tx.Provenance.RecordIndex,
	}
	if tx.AmountOriginal != "" {
		inst["attr:amount_original"] = tx.AmountOriginal
	}
	if tx.Currency != "" {
		inst["attr:currency"] = tx.Currency
	}
	if tx.Merchant != "" {
		inst["attr:merchant"] = tx.Merchant
	}
	if tx.Kind != "" {
		inst["attr:transaction_kind"] = string(tx.Kind)
	}
	if tx.Category != "" {
		inst["attr:category"] = tx.Category
	}
	if tx.Bank != "" {
		inst["attr:bank"] = tx.Bank
	}
	if !tx.Provenance.ExtractedAt.IsZero() {
		inst["attr:extracted_at"] = tx.Provenance.ExtractedAt
	}
	if tx.Provenance.ParserVersion != "" {
		inst["attr:parser_version"] = tx.Provenance.ParserVersion
	}
	for k, v := range tx.Metadata {
		inst["attr:"+k] = v
	}
	return inst
}
