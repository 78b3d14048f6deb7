package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrMalformedNumber = errors.New("malformed number")

// CoerceNumber converts a loosely typed numeric value to a non-negative
// finite float. Anything else becomes 0.
func CoerceNumber(v any) float64 {
	f, ok := parseFloatAny(v)
	if !ok {
		return 0
	}
	return clampNutrient(f)
}

// ParseNutrient parses user input for a nutrient field. In lenient mode a
// malformed value becomes 0; in strict mode it is rejected.
func ParseNutrient(name, raw string, strict bool) (float64, error) {
	f, ok := parseFloatAny(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		if strict {
			return 0, fmt.Errorf("%s: %w %q", name, ErrMalformedNumber, raw)
		}
		return 0, nil
	}
	return f, nil
}

func clampNutrient(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
