package pathway

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteworks/wte-api/internal/units"
)

func TestFermentationConverter_Convert(t *testing.T) {
	c := NewFermentationConverter()

	tests := []struct {
		name        string
		quantity    float64
		unit        string
		wantScale   string
		wantFeed    float64
		wantEthanol float64
		wantPrice   float64
	}{
		{
			name:        "pilot scale in canonical unit",
			quantity:    1000,
			unit:        "kghr",
			wantScale:   ScalePilot,
			wantFeed:    1000,
			wantEthanol: 0.763, // 1000 * 8760 * 0.0871 / 1e6
			wantPrice:   3.16,
		},
		{
			name:        "empty unit means canonical",
			quantity:    2500,
			unit:        "",
			wantScale:   ScalePilot,
			wantFeed:    2500,
			wantEthanol: 1.9075,
			wantPrice:   3.16,
		},
		{
			name:        "annual short tons",
			quantity:    100,
			unit:        "tons",
			wantScale:   ScalePilot,
			wantFeed:    10.356, // 100 * 907.185 / 8760
			wantEthanol: 0.0079,
			wantPrice:   3.16,
		},
		{
			name:        "annual tonnes reaching demonstration scale",
			quantity:    87_600,
			unit:        "tonnes",
			wantScale:   ScaleDemonstration,
			wantFeed:    10_000,
			wantEthanol: 7.63,
			wantPrice:   2.62,
		},
		{
			name:        "demonstration scale",
			quantity:    20_000,
			unit:        "kghr",
			wantScale:   ScaleDemonstration,
			wantFeed:    20_000,
			wantEthanol: 15.2599,
			wantPrice:   2.62,
		},
		{
			name:        "commercial scale",
			quantity:    60_000,
			unit:        "kghr",
			wantScale:   ScaleCommercial,
			wantFeed:    60_000,
			wantEthanol: 45.7798,
			wantPrice:   2.15,
		},
		{
			name:        "zero quantity is valid",
			quantity:    0,
			unit:        "kghr",
			wantScale:   ScalePilot,
			wantFeed:    0,
			wantEthanol: 0,
			wantPrice:   3.16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(Input{Quantity: tt.quantity, Unit: tt.unit})

			require.NoError(t, err)
			assert.Equal(t, Fermentation, got.Method)
			assert.Equal(t, tt.wantScale, got.Scale)
			assert.Equal(t, "mass", got.Feed.Name)
			assert.Equal(t, "kg/hr", got.Feed.Unit)
			assert.InDelta(t, tt.wantFeed, got.Feed.Value, 1e-9)

			require.Len(t, got.Derived, 3)
			assert.Equal(t, "ethanol", got.Derived[0].Name)
			assert.Equal(t, "MM gal/yr", got.Derived[0].Unit)
			assert.InDelta(t, tt.wantEthanol, got.Derived[0].Value, 1e-9)
			assert.Equal(t, "price", got.Derived[1].Name)
			assert.InDelta(t, tt.wantPrice, got.Derived[1].Value, 1e-9)
			assert.Equal(t, "gwp", got.Derived[2].Name)
			assert.InDelta(t, FermentationGWPLbPerGal, got.Derived[2].Value, 1e-9)
		})
	}
}

func TestFermentationConverter_Convert_InvalidInput(t *testing.T) {
	c := NewFermentationConverter()

	tests := []struct {
		name     string
		quantity float64
		unit     string
		wantErr  error
	}{
		{"unknown unit", 10, "bushels", units.ErrUnknownUnit},
		{"volumetric rate not accepted", 1, "mgd", units.ErrUnknownUnit},
		{"cubic meters per day not accepted", 1, "m3d", units.ErrUnknownUnit},
		{"plain mass not accepted", 10, "kg", units.ErrUnknownUnit},
		{"negative quantity", -5, "kghr", units.ErrNegativeQuantity},
		{"NaN quantity", math.NaN(), "kghr", units.ErrNonFiniteQuantity},
		{"infinite quantity", math.Inf(1), "kghr", units.ErrNonFiniteQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Convert(Input{Quantity: tt.quantity, Unit: tt.unit})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFermentationConverter_Convert_Pure(t *testing.T) {
	c := NewFermentationConverter()
	in := Input{Quantity: 4321.5, Unit: "tons"}

	first, err1 := c.Convert(in)
	second, err2 := c.Convert(in)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestFermentationConverter_Metadata(t *testing.T) {
	c := NewFermentationConverter()

	assert.Equal(t, Fermentation, c.Method())
	require.NotEmpty(t, c.Units())
	assert.Equal(t, "kghr", c.Units()[0], "canonical unit listed first")
	assert.NotContains(t, c.Units(), "mgd")
}
