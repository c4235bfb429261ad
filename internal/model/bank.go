package model

// Bank is a small reference-data entity a Transaction attributes itself to.
// Banks are stored in banks.csv and registered or updated through
// banks.Service. The bank-registered / bank-updated event kinds and their
// payload codec exist, but no command appends those events and no
// projection folds them.
type Bank struct {
	ID              string
	Name            string
	LastFour        string
	DefaultCurrency string
}
