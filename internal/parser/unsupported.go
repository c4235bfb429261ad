package parser

import (
	"io"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// UnsupportedParser is registered for source kinds that are identified by
// DetectSource but have no implementation yet (currently files matched by
// the "scotia" filename token). It exists so
// DetectSource and the Registry agree on a stable vocabulary of recognized
// SourceKinds even before every one of them has a parser body.
type UnsupportedParser struct{}

const unsupportedVersion = "unsupported-v0"

func (p *UnsupportedParser) SourceKind() model.SourceKind { return model.SourceUnsupported }
func (p *UnsupportedParser) Version() string              { return unsupportedVersion }

func (p *UnsupportedParser) Parse(r io.Reader, sourceFile string) ([]model.RawTransaction, error) {
	return nil, ErrUnsupportedSource
}
