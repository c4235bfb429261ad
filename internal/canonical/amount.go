package canonical

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// displayPrecision is the number of fractional digits used when rendering
// an amount for humans (descriptions, reports). It is deliberately coarser
// than hashPrecision: identity needs to survive sub-cent conversion drift,
// display does not need to show it.
const displayPrecision = 2

// ParseAmount accepts either a plain decimal string ("45.99", "-45.99") or
// a quoted currency string with a leading minus, a dollar sign, and
// thousands separators ("-$1,234.56"). Source-native amount text takes
// many shapes; canonicalization must be liberal about what it accepts.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, strconv.ErrSyntax
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
