package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMassToKilograms(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		wantErr bool
		errType error
	}{
		// Standard units
		{
			name:   "grams to kg",
			value:  1000.0,
			unit:   "g",
			wantKg: 1.0,
		},
		{
			name:   "kilograms identity",
			value:  150.0,
			unit:   "kg",
			wantKg: 150.0,
		},
		{
			name:   "pounds to kg",
			value:  100.0,
			unit:   "lb",
			wantKg: 45.3592, // 100 * 0.453592
		},
		{
			name:   "short tons to kg",
			value:  1.0,
			unit:   "ton",
			wantKg: 907.185,
		},
		{
			name:   "metric tonnes to kg",
			value:  1.0,
			unit:   "tonne",
			wantKg: 1000.0,
		},
		// Defaulting and case insensitivity
		{
			name:   "empty unit means kg",
			value:  42.0,
			unit:   "",
			wantKg: 42.0,
		},
		{
			name:   "uppercase KG",
			value:  100.0,
			unit:   "KG",
			wantKg: 100.0,
		},
		{
			name:   "whitespace around unit",
			value:  2.0,
			unit:   " ton ",
			wantKg: 1814.37,
		},
		// Edge cases
		{
			name:   "zero value",
			value:  0.0,
			unit:   "kg",
			wantKg: 0.0,
		},
		// Error cases
		{
			name:    "unknown unit",
			value:   100.0,
			unit:    "stone",
			wantErr: true,
			errType: ErrUnknownUnit,
		},
		{
			name:    "rate unit rejected for plain mass",
			value:   100.0,
			unit:    "kghr",
			wantErr: true,
			errType: ErrUnknownUnit,
		},
		{
			name:    "negative value",
			value:   -100.0,
			unit:    "kg",
			wantErr: true,
			errType: ErrNegativeQuantity,
		},
		{
			name:    "positive infinity",
			value:   math.Inf(1),
			unit:    "kg",
			wantErr: true,
			errType: ErrNonFiniteQuantity,
		},
		{
			name:    "NaN value",
			value:   math.NaN(),
			unit:    "kg",
			wantErr: true,
			errType: ErrNonFiniteQuantity,
		},
		{
			name:    "multiplication overflow",
			value:   math.MaxFloat64 / 100, // Large enough that *1000 overflows to Inf
			unit:    "tonne",               // factor = 1000
			wantErr: true,
			errType: ErrNonFiniteQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MassToKilograms(tt.value, tt.unit)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
				return
			}

			require.NoError(t, err)
			// Use InDelta for floating point comparison (0.01% tolerance)
			assert.InDelta(t, tt.wantKg, got, tt.wantKg*0.0001+0.0001)
		})
	}
}

func TestRateToKgPerHour(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		wantKgHr float64
		wantErr  bool
		errType  error
	}{
		{
			name:     "kghr identity",
			value:    100.0,
			unit:     "kghr",
			wantKgHr: 100.0,
		},
		{
			name:     "short tons per year",
			value:    100.0,
			unit:     "tons",
			wantKgHr: 10.3560, // 100 * 907.185 / 8760
		},
		{
			name:     "tonnes per year",
			value:    100.0,
			unit:     "tonnes",
			wantKgHr: 11.4155, // 100 * 1000 / 8760
		},
		{
			name:     "million gallons per day",
			value:    1.0,
			unit:     "mgd",
			wantKgHr: 157725.491,
		},
		{
			name:     "cubic meters per day",
			value:    24.0,
			unit:     "m3d",
			wantKgHr: 1000.0,
		},
		{
			name:     "empty unit means kghr",
			value:    55.5,
			unit:     "",
			wantKgHr: 55.5,
		},
		{
			name:     "uppercase MGD",
			value:    1.0,
			unit:     "MGD",
			wantKgHr: 157725.491,
		},
		{
			name:    "plain mass unit rejected for rates",
			value:   100.0,
			unit:    "kg",
			wantErr: true,
			errType: ErrUnknownUnit,
		},
		{
			name:    "negative value",
			value:   -1.0,
			unit:    "kghr",
			wantErr: true,
			errType: ErrNegativeQuantity,
		},
		{
			name:    "NaN value",
			value:   math.NaN(),
			unit:    "tons",
			wantErr: true,
			errType: ErrNonFiniteQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RateToKgPerHour(tt.value, tt.unit)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantKgHr, got, tt.wantKgHr*0.0001+0.0001)
		})
	}
}

// TestRoundTrip verifies that normalizing to the canonical unit and dividing
// back out by the same factor recovers the original quantity.
func TestRoundTrip(t *testing.T) {
	massUnits := []string{"g", "kg", "lb", "ton", "tonne"}
	for _, unit := range massUnits {
		t.Run("mass_"+unit, func(t *testing.T) {
			const original = 123.456

			kg, err := MassToKilograms(original, unit)
			require.NoError(t, err)

			factor, ok := MassUnitFactor(unit)
			require.True(t, ok)
			assert.InDelta(t, original, kg/factor, 1e-9)
		})
	}

	rateUnits := []string{"kghr", "tons", "tonnes", "mgd", "m3d"}
	for _, unit := range rateUnits {
		t.Run("rate_"+unit, func(t *testing.T) {
			const original = 987.654

			kgHr, err := RateToKgPerHour(original, unit)
			require.NoError(t, err)

			factor, ok := RateUnitFactor(unit)
			require.True(t, ok)
			assert.InDelta(t, original, kgHr/factor, 1e-9)
		})
	}
}

func TestIsRecognizedRateUnit(t *testing.T) {
	tests := []struct {
		unit string
		want bool
	}{
		// Valid units
		{"kghr", true},
		{"tons", true},
		{"tonnes", true},
		{"mgd", true},
		{"m3d", true},
		{"", true}, // empty defaults to canonical
		// Case insensitivity
		{"KGHR", true},
		{"Tonnes", true},
		// Invalid units
		{"kg", false},
		{"gpm", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecognizedRateUnit(tt.unit))
		})
	}
}

func TestIsRecognizedMassUnit(t *testing.T) {
	tests := []struct {
		unit string
		want bool
	}{
		{"g", true},
		{"kg", true},
		{"lb", true},
		{"lbs", true},
		{"ton", true},
		{"tonne", true},
		{"KG", true},
		{"", true},
		{"kghr", false},
		{"oz", false},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecognizedMassUnit(tt.unit))
		})
	}
}
