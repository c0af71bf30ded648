package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("imperial converts inches and pounds", func(t *testing.T) {
		h, w, err := Normalize(68, 150, Imperial)
		require.NoError(t, err)
		assert.InDelta(t, 1.7272, h, 1e-9)
		assert.InDelta(t, 68.0388, w, 1e-9)
	})

	t.Run("metric converts centimeters", func(t *testing.T) {
		h, w, err := Normalize(160, 45, Metric)
		require.NoError(t, err)
		assert.InDelta(t, 1.6, h, 1e-12)
		assert.Equal(t, 45.0, w)
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, _, err := Normalize(160, 45, UnitSystem("stone"))
		assert.ErrorIs(t, err, ErrUnsupportedUnit)
	})
}

func TestParseUnitSystem(t *testing.T) {
	tests := []struct {
		in      string
		want    UnitSystem
		wantErr bool
	}{
		{"", Imperial, false},
		{"imperial", Imperial, false},
		{"metric", Metric, false},
		{"Metric", "", true},
		{"si", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnitSystem(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
