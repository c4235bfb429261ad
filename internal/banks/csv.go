// Package banks implements the small reference-data registry a
// Transaction's Bank field attributes itself to: id, name, an optional
// last-four account fragment, and a default currency (spec §3's
// supplemental Bank entity, named because bank-registered/updated is
// already a §4.5 event kind).
package banks

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

const (
	numFields     = 4
	colID         = 0
	colName       = 1
	colLastFour   = 2
	colDefaultCcy = 3
)

// ReadBanks reads banks.csv.
func ReadBanks(r io.Reader) ([]model.Bank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading banks CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out []model.Bank
	for i, rec := range records[1:] {
		b, err := UnmarshalBank(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// WriteBanks writes banks.csv.
func WriteBanks(w io.Writer, banks []model.Bank) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"bank_id", "name", "last_four", "default_currency"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range banks {
		if err := cw.Write(MarshalBank(b)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalBank converts a Bank to a CSV row.
func MarshalBank(b model.Bank) []string {
	row := make([]string, numFields)
	row[colID] = b.ID
	row[colName] = b.Name
	row[colLastFour] = b.LastFour
	row[colDefaultCcy] = b.DefaultCurrency
	return row
}

// UnmarshalBank converts a CSV row to a Bank.
func UnmarshalBank(record []string) (model.Bank, error) {
	if len(record) != numFields {
		return model.Bank{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	return model.Bank{
		ID:              record[colID],
		Name:            record[colName],
		LastFour:        record[colLastFour],
		DefaultCurrency: record[colDefaultCcy],
	}, nil
}
