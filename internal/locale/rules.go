package locale

import (
	"strings"

	"github.com/finwell/finhealth/internal/model"
)

// EvalCondition evaluates a demographic rule against a respondent profile.
// A nil condition always matches. Unknown operators and missing profile
// fields fail the comparison rather than erroring; conditional content is
// simply not shown.
func EvalCondition(c *model.Condition, profile model.Profile) bool {
	if c == nil {
		return true
	}

	if len(c.All) > 0 {
		for i := range c.All {
			if !EvalCondition(&c.All[i], profile) {
				return false
			}
		}
		return true
	}

	if len(c.Any) > 0 {
		for i := range c.Any {
			if EvalCondition(&c.Any[i], profile) {
				return true
			}
		}
		return false
	}

	val, ok := profile[c.Field]
	if !ok {
		return false
	}

	switch c.Op {
	case model.OpEq:
		return looseEqual(val, c.Value)
	case model.OpIn:
		for _, candidate := range c.In {
			if looseEqual(val, candidate) {
				return true
			}
		}
		return false
	case model.OpGte:
		a, okA := toFloat(val)
		b, okB := toFloat(c.Value)
		return okA && okB && a >= b
	case model.OpLte:
		a, okA := toFloat(val)
		b, okB := toFloat(c.Value)
		return okA && okB && a <= b
	}
	return false
}

// looseEqual compares profile values against rule values across the types
// JSON decoding produces: strings case-insensitively, numbers numerically.
func looseEqual(a, b any) bool {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.EqualFold(sa, sb)
		}
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
