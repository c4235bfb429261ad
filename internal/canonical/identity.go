package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// hashPrecision is the number of fractional digits used when rendering an
// amount into the identity hash input. Chosen independently of the display
// precision so that sub-cent drift from currency conversion never collides
// two economically distinct transactions onto the same identity.
const hashPrecision = 4

// Identity computes the content-addressed hash of a Transaction's defining
// facts: normalized date, canonical amount, merchant, bank. It is a pure
// function of those four values; nothing else may influence it.
func Identity(date string, amount decimal.Decimal, merchant, bank string) string {
	parts := []string{
		normalize(date),
		amount.StringFixed(hashPrecision),
		normalize(merchant),
		normalize(bank),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// normalize case-folds and trims a field before it enters the hash input so
// that cosmetic differences (casing, surrounding whitespace) never produce
// distinct identities for the same economic event.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
