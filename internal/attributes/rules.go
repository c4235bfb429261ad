package attributes

import (
	"fmt"
	"regexp"
)

// Required fails when value is nil or an empty string.
func Required() Rule {
	return func(value any) (bool, string) {
		if value == nil {
			return false, "required field is absent"
		}
		if s, ok := value.(string); ok && s == "" {
			return false, "required field is empty"
		}
		return true, ""
	}
}

// NonEmpty fails when value is a string of length zero (distinct from
// Required: it does not complain about a nil value being absent).
func NonEmpty() Rule {
	return func(value any) (bool, string) {
		s, ok := value.(string)
		if ok && s == "" {
			return false, "must be non-empty"
		}
		return true, ""
	}
}

// Positive fails when value is a number <= 0.
func Positive() Rule {
	return func(value any) (bool, string) {
		f, ok := asFloat(value)
		if !ok {
			return true, ""
		}
		if f <= 0 {
			return false, fmt.Sprintf("must be positive, got %v", value)
		}
		return true, ""
	}
}

// NonZero fails when value is exactly zero.
func NonZero() Rule {
	return func(value any) (bool, string) {
		f, ok := asFloat(value)
		if !ok {
			return true, ""
		}
		if f == 0 {
			return false, "must be non-zero"
		}
		return true, ""
	}
}

// Range fails when value falls outside [min, max].
func Range(min, max float64) Rule {
	return func(value any) (bool, string) {
		f, ok := asFloat(value)
		if !ok {
			return true, ""
		}
		if f < min || f > max {
			return false, fmt.Sprintf("must be between %v and %v, got %v", min, max, value)
		}
		return true, ""
	}
}

// Pattern fails when value (as a string) does not match the given regexp.
func Pattern(expr string) Rule {
	re := regexp.MustCompile(expr)
	return func(value any) (bool, string) {
		s, ok := value.(string)
		if !ok {
			return true, ""
		}
		if !re.MatchString(s) {
			return false, fmt.Sprintf("does not match pattern %s", expr)
		}
		return true, ""
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
