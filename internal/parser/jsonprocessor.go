package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// PaymentProcessorParser reads the top-level {"object":"list","data":[...]}
// payload used by payment-processor exports: cent-integer amounts,
// epoch-second timestamps.
type PaymentProcessorParser struct{}

const paymentProcessorVersion = "jsonprocessor-v1"

func (p *PaymentProcessorParser) SourceKind() model.SourceKind { return model.SourcePaymentProcessor }
func (p *PaymentProcessorParser) Version() string              { return paymentProcessorVersion }

type processorEnvelope struct {
	Object string            `json:"object"`
	Data   []processorRecord `json:"data"`
}

type processorRecord struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Created     int64  `json:"created"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (p *PaymentProcessorParser) Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error) {
	var env processorEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, &ErrStructural{File: sourceFile, Err: err}
	}
	if env.Data == nil {
		return nil, &ErrStructural{File: sourceFile, Err: fmt.Errorf("JSON missing 'data' array")}
	}

	out := make([]model.RawTransaction, 0, len(env.Data))
	for idx, item := range env.Data {
		recordIndex := idx + 1 // JSON array index, 1-based for consistency

		amountDollars := decimal.NewFromInt(item.Amount).Div(decimal.NewFromInt(100))
		date := time.Unix(item.Created, 0).UTC().Format("01/02/2006")

		desc := item.Description
		id := item.ID
		if id == "" {
			id = "unknown"
		}
		var fullDescription string
		if desc == "" {
			tType := item.Type
			if tType == "" {
				tType = "unknown"
			}
			fullDescription = fmt.Sprintf("Stripe %s (ID: %s)", tType, id)
		} else {
			fullDescription = fmt.Sprintf("%s (ID: %s)", desc, id)
		}

		rawImage, _ := json.Marshal(item)

		raw := model.RawTransaction{
			SourceKind:  model.SourcePaymentProcessor,
			SourceFile:  sourceFile,
			RecordIndex: recordIndex,
			RawImage:    string(rawImage),
			Date:        date,
			Amount:      amountDollars.StringFixed(2),
			Description: fullDescription,
		}

		if merchant, ok := p.ExtractMerchant(desc); ok {
			raw.Merchant = &merchant
		}

		out = append(out, raw)
	}
	return out, nil
}

// ExtractMerchant recognizes "Payment from X"/"Payment to X" narrations,
// falling back to the first significant word of the description.
func (p *PaymentProcessorParser) ExtractMerchant(description string) (string, bool) {
	if description == "" {
		return "", false
	}

	if fromPos := strings.Index(description, "from "); fromPos >= 0 {
		merchant := strings.TrimSpace(description[fromPos+len("from "):])
		if merchant != "" {
			return merchant, true
		}
	}
	if toPos := strings.Index(description, "to "); toPos >= 0 {
		merchant := strings.TrimSpace(description[toPos+len("to "):])
		if merchant != "" {
			return merchant, true
		}
	}

	words := strings.Fields(description)
	if len(words) == 0 {
		return "", false
	}
	if len(words[0]) > 3 {
		return words[0], true
	}
	return "", false
}

// ClassifyKind treats refunds and fees as expenses, everything else
// (payouts) as income.
func (p *PaymentProcessorParser) ClassifyKind(description string, amount decimal.Decimal) model.Kind {
	lower := strings.ToLower(description)
	if strings.Contains(lower, "refund") || strings.Contains(lower, "fee") || strings.Contains(lower, "charge") {
		return model.KindExpense
	}
	return model.KindIncome
}
