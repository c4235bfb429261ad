package shapes

// TransactionShape is the core shape every Transaction must satisfy,
// independent of any particular use-case context.
var TransactionShape = Shape{
	Name: "transaction",
	Required: []string{
		"attr:date",
		"attr:amount",
		"attr:description",
		"attr:source_file",
		"attr:source_line",
	},
	Optional: []string{
		"attr:amount_original",
		"attr:currency",
		"attr:merchant",
		"attr:transaction_kind",
		"attr:category",
		"attr:account_name",
		"attr:account_number",
		"attr:bank",
		"attr:confidence_score",
		"attr:verified",
		"attr:verified_by",
		"attr:verified_at",
		"attr:extracted_at",
		"attr:parser_version",
	},
}
