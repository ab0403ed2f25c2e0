package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
)

const (
	minScore = 1
	maxScore = 5
)

// numericScores keeps the numeric entries of raw. Strings, booleans, nested
// values, NaN and infinities are dropped silently; a numeric score outside
// 1..5 rejects the whole submission.
func numericScores(raw map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for key, value := range raw {
		f, ok := toFloat(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if f < minScore || f > maxScore {
			return nil, fmt.Errorf("%w: %s=%v", domain.ErrInvalidScore, key, f)
		}
		out[key] = f
	}
	if len(out) == 0 {
		return nil, domain.ErrNoValidScores
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func mean(scores map[string]float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// round2 rounds half away from zero to two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
