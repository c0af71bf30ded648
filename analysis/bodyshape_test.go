package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBodyShape(t *testing.T) {
	tests := []struct {
		name       string
		m          BodyMeasurements
		want       BodyShape
		confidence float64
	}{
		{"equal girths hit apple before rectangle", BodyMeasurements{Bust: 30, Waist: 30, Hips: 30}, Apple, 0.80},
		{"hourglass", BodyMeasurements{Bust: 36, Waist: 28, Hips: 36}, Hourglass, 0.90},
		{"pear", BodyMeasurements{Bust: 34, Waist: 28, Hips: 40}, Pear, 0.85},
		{"inverted triangle", BodyMeasurements{Bust: 40, Waist: 30, Hips: 34}, InvertedTriangle, 0.85},
		{"wide bust hip gap skips hourglass", BodyMeasurements{Bust: 40, Waist: 30, Hips: 37.6}, InvertedTriangle, 0.85},
		{"apple", BodyMeasurements{Bust: 36, Waist: 34, Hips: 37}, Apple, 0.80},
		{"rectangle", BodyMeasurements{Bust: 34, Waist: 29, Hips: 34.5}, Rectangle, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyBodyShape(tt.m)
			require.NoError(t, err)
			assert.Equal(t, BodyShapeResult{Type: tt.want, Confidence: tt.confidence}, got)
		})
	}
}

func TestClassifyBodyShapeIgnoresReservedFields(t *testing.T) {
	base := BodyMeasurements{Bust: 36, Waist: 28, Hips: 36}
	full := base
	full.Shoulders, full.Height, full.Weight = 40, 66, 140

	a, err := ClassifyBodyShape(base)
	require.NoError(t, err)
	b, err := ClassifyBodyShape(full)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassifyBodyShapeRejectsNonPositive(t *testing.T) {
	for _, m := range []BodyMeasurements{
		{Bust: 36, Waist: 0, Hips: 36},
		{Bust: -1, Waist: 28, Hips: 36},
		{Bust: 36, Waist: 28},
		{Bust: 36, Waist: math.NaN(), Hips: 36},
	} {
		_, err := ClassifyBodyShape(m)
		assert.ErrorIs(t, err, ErrInvalidMeasurement, "%+v", m)
	}
}
