package model

// SourceKind identifies which statement format a RawTransaction came from.
type SourceKind string

const (
	SourceCheckingAccount  SourceKind = "checking-account"
	SourceCreditCard       SourceKind = "credit-card"
	SourcePaymentProcessor SourceKind = "payment-processor"
	SourceMultiCurrency    SourceKind = "multi-currency"
	SourceUnsupported      SourceKind = "unsupported"
)

// Kind is the closed set of transaction kinds a Transaction may carry.
type Kind string

const (
	KindExpense     Kind = "expense"
	KindIncome      Kind = "income"
	KindCardPayment Kind = "card-payment"
	KindTransfer    Kind = "transfer"
)
