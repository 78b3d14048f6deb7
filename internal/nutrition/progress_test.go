package nutrition_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

func TestProgressRatio(t *testing.T) {
	assert.InDelta(t, 25, nutrition.ProgressRatio(50, 200), tolerance)
	assert.InDelta(t, 100, nutrition.ProgressRatio(250, 200), tolerance)
	assert.InDelta(t, 100, nutrition.ProgressRatio(200, 200), tolerance)
	assert.InDelta(t, 0, nutrition.ProgressRatio(0, 200), tolerance)

	for _, actual := range []float64{0, 1, 500, 1e9} {
		assert.Zero(t, nutrition.ProgressRatio(actual, 0))
		assert.Zero(t, nutrition.ProgressRatio(actual, -10))
	}
}

func TestProgressUnknownTarget(t *testing.T) {
	r := nutrition.Progress(1200, 0, false)
	assert.False(t, r.Known)
	assert.Equal(t, "—", r.String())

	r = nutrition.Progress(1200, 0, true)
	assert.True(t, r.Known)
	assert.Equal(t, "0.0%", r.String())

	r = nutrition.Progress(1500, 2000, true)
	assert.Equal(t, "75.0%", r.String())
}

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{52.0, 52},
		{"14", 14},
		{" 0.3 ", 0.3},
		{json.Number("884"), 884},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{"-4", 0},
		{"NaN", 0},
		{"Inf", 0},
		{true, 0},
		{7, 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nutrition.CoerceNumber(tc.in), "input %#v", tc.in)
	}
}

func TestParseNutrient(t *testing.T) {
	v, err := nutrition.ParseNutrient("calories", "12.5", false)
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = nutrition.ParseNutrient("calories", "12,5", false)
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = nutrition.ParseNutrient("calories", "12,5", true)
	require.ErrorIs(t, err, nutrition.ErrMalformedNumber)
	assert.Contains(t, err.Error(), "calories")

	_, err = nutrition.ParseNutrient("fat", "-1", true)
	require.ErrorIs(t, err, nutrition.ErrMalformedNumber)
}
