package ingest

// FileError records a source-structure failure: the batch continues with
// the remaining files, but this one contributed nothing.
type FileError struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// Report summarizes one batch ingestion run (spec §6's process-level
// surface). A non-empty Errors slice does not by itself mean Run returned
// an error — per-file structural failures are recoverable and reported
// here, not raised.
type Report struct {
	FilesProcessed       int         `json:"files_processed"`
	TransactionsImported int         `json:"transactions_imported"`
	DuplicatesSuppressed int         `json:"duplicates_suppressed"`
	RulesFileVersion     string      `json:"rules_file_version"`
	Errors               []FileError `json:"errors"`
}
