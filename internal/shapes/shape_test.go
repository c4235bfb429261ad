package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgertrace/ledgertrace/internal/attributes"
)

func TestValidate_MissingRequiredAttribute(t *testing.T) {
	registry := attributes.NewCoreRegistry()
	instance := Instance{
		"attr:amount":      "45.99",
		"attr:description": "STARBUCKS",
		"attr:source_file": "jan.csv",
		"attr:source_line": 2,
	}

	errs := Validate(TransactionShape, instance, registry)
	assert.Len(t, errs, 1)
	assert.Equal(t, "attr:date", errs[0].Attribute)
}

func TestValidate_OptionalUnrecognizedNeverForbidden(t *testing.T) {
	registry := attributes.NewCoreRegistry()
	instance := Instance{
		"attr:date":         "2024-01-15",
		"attr:amount":       "45.99",
		"attr:description":  "STARBUCKS",
		"attr:source_file":  "jan.csv",
		"attr:source_line":  2,
		"attr:anything_new": "whatever",
	}

	errs := Validate(TransactionShape, instance, registry)
	assert.Empty(t, errs)
}

func TestValidate_OptionalPresentMustPass(t *testing.T) {
	registry := attributes.NewCoreRegistry()
	instance := Instance{
		"attr:date":         "2024-01-15",
		"attr:amount":       "45.99",
		"attr:description":  "STARBUCKS",
		"attr:source_file":  "jan.csv",
		"attr:source_line":  2,
		"attr:currency":     "usd", // lowercase fails the pattern rule
	}

	errs := Validate(TransactionShape, instance, registry)
	assert.Len(t, errs, 1)
	assert.Equal(t, "attr:currency", errs[0].Attribute)
}
