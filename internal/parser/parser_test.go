package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CheckingAccountParser{})
	p := r.Get(model.SourceCheckingAccount)
	require.NotNil(t, p)
	assert.Equal(t, checkingVersion, p.Version())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get(model.SourceCreditCard))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CheckingAccountParser{})
	assert.Panics(t, func() { r.Register(&CheckingAccountParser{}) })
}

func TestDefaultRegistry_HasAllKinds(t *testing.T) {
	r := DefaultRegistry()
	for _, kind := range []model.SourceKind{
		model.SourceCheckingAccount,
		model.SourceCreditCard,
		model.SourcePaymentProcessor,
		model.SourceMultiCurrency,
		model.SourceUnsupported,
	} {
		assert.NotNil(t, r.Get(kind), "missing parser for %s", kind)
	}
}

func TestDetectSource_ByFilename(t *testing.T) {
	cases := map[string]model.SourceKind{
		"chase_checking_jan.csv":  model.SourceCheckingAccount,
		"Apple Card Activity.csv": model.SourceCreditCard,
		"stripe_january.json":     model.SourcePaymentProcessor,
		"wise_transfers.csv":      model.SourceMultiCurrency,
		"scotiabank_export.csv":   model.SourceUnsupported,
	}
	for filename, want := range cases {
		got, err := DetectSource(filename, "")
		require.NoError(t, err, filename)
		assert.Equal(t, want, got, filename)
	}
}

func TestDetectSource_ByContentWhenFilenameAmbiguous(t *testing.T) {
	kind, err := DetectSource("statement.csv", "Date,Description,Amount")
	require.NoError(t, err)
	assert.Equal(t, model.SourceCheckingAccount, kind)
}

func TestDetectSource_Unrecognized(t *testing.T) {
	_, err := DetectSource("statement.csv", "garbage,header")
	assert.Error(t, err)
}

func TestUnsupportedParser_ReturnsSentinel(t *testing.T) {
	p := &UnsupportedParser{}
	_, err := p.Parse(strings.NewReader(""), "scotia.csv")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
