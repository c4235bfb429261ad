package contexts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgertrace/ledgertrace/internal/shapes"
)

func TestSatisfies_Display(t *testing.T) {
	instance := shapes.Instance{
		"attr:date":             "2024-01-15",
		"attr:merchant":         "Starbucks",
		"attr:amount":           "-45.99",
		"attr:transaction_kind": "expense",
	}
	ok, missing := Satisfies(instance, Display)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestSatisfies_DisplayMissingMerchant(t *testing.T) {
	instance := shapes.Instance{
		"attr:date":             "2024-01-15",
		"attr:amount":           "-45.99",
		"attr:transaction_kind": "expense",
	}
	ok, missing := Satisfies(instance, Display)
	assert.False(t, ok)
	assert.Contains(t, missing, "attr:merchant")
}

func TestSatisfies_TrainingDataRequiresVerifiedTrue(t *testing.T) {
	instance := shapes.Instance{
		"attr:merchant":         "Starbucks",
		"attr:category":         "Restaurants",
		"attr:transaction_kind": "expense",
		"attr:verified":         false,
	}
	ok, missing := Satisfies(instance, TrainingData)
	assert.False(t, ok)
	assert.NotEmpty(t, missing)
}

func TestSatisfies_TrainingDataVerifiedTrue(t *testing.T) {
	instance := shapes.Instance{
		"attr:merchant":         "Starbucks",
		"attr:category":         "Restaurants",
		"attr:transaction_kind": "expense",
		"attr:verified":         true,
	}
	ok, _ := Satisfies(instance, TrainingData)
	assert.True(t, ok)
}
