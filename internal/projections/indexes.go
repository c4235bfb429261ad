package projections

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// Indexes are the by-attribute views spec §4.5 names: by date, by
// merchant, by amount range. All three are pure derivations of a Ledger:
// the date and merchant views are identity lists built once from it, and
// the amount-range view scans the referenced ledger on each call.
type Indexes struct {
	ledger     *Ledger
	byDate     map[string][]string
	byMerchant map[string][]string
}

// BuildIndexes derives by-attribute indexes from a Ledger projection.
func BuildIndexes(ledger *Ledger) *Indexes {
	idx := &Indexes{
		ledger:     ledger,
		byDate:     make(map[string][]string),
		byMerchant: make(map[string][]string),
	}
	for _, tx := range ledger.Transactions() {
		idx.byDate[tx.Date] = append(idx.byDate[tx.Date], tx.Identity)
		key := normalizeMerchantKey(tx.Merchant)
		idx.byMerchant[key] = append(idx.byMerchant[key], tx.Identity)
	}
	return idx
}

// ByDate returns every transaction on a normalized date, in identity order.
func (idx *Indexes) ByDate(date string) []model.Transaction {
	return idx.resolve(idx.byDate[date])
}

// ByMerchant returns every transaction attributed to a merchant
// (case-insensitive).
func (idx *Indexes) ByMerchant(merchant string) []model.Transaction {
	return idx.resolve(idx.byMerchant[normalizeMerchantKey(merchant)])
}

// ByAmountRange returns every transaction whose amount falls within
// [min, max] inclusive.
func (idx *Indexes) ByAmountRange(min, max decimal.Decimal) []model.Transaction {
	var out []model.Transaction
	for _, tx := range idx.ledger.Transactions() {
		if tx.Amount.GreaterThanOrEqual(min) && tx.Amount.LessThanOrEqual(max) {
			out = append(out, tx)
		}
	}
	return out
}

func (idx *Indexes) resolve(identities []string) []model.Transaction {
	out := make([]model.Transaction, 0, len(identities))
	for _, id := range identities {
		if tx, ok := idx.ledger.Get(id); ok {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}

func normalizeMerchantKey(merchant string) string {
	key := make([]byte, 0, len(merchant))
	for i := 0; i < len(merchant); i++ {
		c := merchant[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		key = append(key, c)
	}
	return string(key)
}
