package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/UknowEdy/chefetoile-backend/internal/rating/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanRounding(t *testing.T) {
	scores, err := numericScores(map[string]any{"a": 5.0, "b": 4.0, "c": 5.0, "d": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 4.5, round2(mean(scores)))

	scores, err = numericScores(map[string]any{"a": 5, "b": 5, "c": 4})
	require.NoError(t, err)
	assert.Equal(t, 4.67, round2(mean(scores)))
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 4.13, round2(4.125))
	assert.Equal(t, 3.0, round2(2.999))
	assert.Equal(t, 4.25, round2(4.25))
}

func TestNumericScoresDropsNonNumbers(t *testing.T) {
	scores, err := numericScores(map[string]any{
		"qualiteNourriture": 5,
		"ponctualite":       json.Number("4"),
		"presentation":      "5",
		"communication":     true,
		"diversiteMenu":     nil,
		"nested":            map[string]any{"x": 5},
		"weird":             math.NaN(),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"qualiteNourriture": 5, "ponctualite": 4}, scores)
}

func TestNumericScoresErrors(t *testing.T) {
	_, err := numericScores(map[string]any{"a": "5", "b": false})
	assert.ErrorIs(t, err, domain.ErrNoValidScores)

	_, err = numericScores(nil)
	assert.ErrorIs(t, err, domain.ErrNoValidScores)

	_, err = numericScores(map[string]any{"a": 6})
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = numericScores(map[string]any{"a": 0.5, "b": 4})
	assert.ErrorIs(t, err, domain.ErrInvalidScore)
}
