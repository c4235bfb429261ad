package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

func TestMatches_PlainSubstring(t *testing.T) {
	assert.True(t, matches("STARBUCKS", "STARBUCKS COFFEE"))
	assert.True(t, matches("starbucks", "STARBUCKS COFFEE"))
	assert.False(t, matches("AMAZON", "STARBUCKS COFFEE"))
}

func TestMatches_WildcardSuffix(t *testing.T) {
	assert.True(t, matches("STARBUCKS*", "STARBUCKS COFFEE"))
	assert.True(t, matches("STARBUCKS*", "STARBUCKS #4521"))
	assert.False(t, matches("STARBUCKS*", "COFFEE STARBUCKS"))
}

func TestMatches_WildcardMatchesEveryNonEmptyString(t *testing.T) {
	assert.True(t, matches("*", "anything"))
	assert.False(t, matches("*", ""))
}

func TestMatches_MiddleFragmentsInOrder(t *testing.T) {
	assert.True(t, matches("AMAZON.COM MARKETPLACE*", "AMAZON.COM MARKETPLACE US"))
	assert.False(t, matches("AMAZON.COM MARKETPLACE*", "AMAZON.COM US MARKETPLACE"))
}

func TestEngine_ClassifyFirstMatchByPriority(t *testing.T) {
	engine := NewEngine([]model.ClassificationRule{
		{ID: "amzn", Pattern: "AMAZON*", Category: "Shopping", Confidence: 0.90, Priority: 10},
		{ID: "amzn-mkt", Pattern: "AMAZON.COM MARKETPLACE*", Category: "Online Shopping", Confidence: 0.98, Priority: 100},
	}, "v1")

	result := engine.Classify("AMAZON.COM MARKETPLACE US")
	assert.Equal(t, "amzn-mkt", result.RuleID)
	assert.Equal(t, "Online Shopping", result.Category)
	assert.Equal(t, 0.98, result.Confidence)
}

func TestEngine_NoMatchYieldsZeroResult(t *testing.T) {
	engine := NewEngine(nil, "v1")
	result := engine.Classify("UNKNOWN MERCHANT")
	assert.Equal(t, "", result.RuleID)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, "", result.Category)
}

func TestEngine_RuleIDAlwaysHasHighestPriorityAmongMatches(t *testing.T) {
	engine := NewEngine([]model.ClassificationRule{
		{ID: "general", Pattern: "STAR*", Confidence: 0.5, Priority: 1},
		{ID: "specific", Pattern: "STARBUCKS*", Confidence: 0.9, Priority: 50},
	}, "v1")

	result := engine.Classify("STARBUCKS DOWNTOWN")
	matchingPriorities := map[string]int{"general": 1, "specific": 50}
	for _, r := range engine.Rules() {
		if r.ID == result.RuleID {
			continue
		}
		if matches(r.Pattern, "STARBUCKS DOWNTOWN") {
			assert.GreaterOrEqual(t, matchingPriorities[result.RuleID], matchingPriorities[r.ID])
		}
	}
	assert.Equal(t, "specific", result.RuleID)
}

func TestValidate_RejectsMissingID(t *testing.T) {
	err := Validate(model.ClassificationRule{Pattern: "X", Confidence: 0.5}, 0)
	assert.Error(t, err)
}

func TestValidate_RejectsEmptyPattern(t *testing.T) {
	err := Validate(model.ClassificationRule{ID: "x", Confidence: 0.5}, 0)
	assert.Error(t, err)
}

func TestValidate_RejectsConfidenceOutOfRange(t *testing.T) {
	assert.Error(t, Validate(model.ClassificationRule{ID: "x", Pattern: "y", Confidence: 1.5}, 0))
	assert.Error(t, Validate(model.ClassificationRule{ID: "x", Pattern: "y", Confidence: -0.1}, 0))
}

func TestValidate_AcceptsBoundaryConfidence(t *testing.T) {
	assert.NoError(t, Validate(model.ClassificationRule{ID: "x", Pattern: "y", Confidence: 0.0}, 0))
	assert.NoError(t, Validate(model.ClassificationRule{ID: "x", Pattern: "y", Confidence: 1.0}, 0))
}
