package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPackingSpec(t *testing.T) {
	spec, err := NewPackingSpec(decimal.NewFromInt(100), 10)
	if err != nil {
		t.Fatalf("Expected valid spec creation to succeed: %v", err)
	}
	if !spec.FeetPerLayer.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected feet per layer 100, got %s", spec.FeetPerLayer)
	}
	if spec.LayersPerPallet != 10 {
		t.Errorf("Expected layers per pallet 10, got %d", spec.LayersPerPallet)
	}

	testCases := []struct {
		name            string
		feetPerLayer    decimal.Decimal
		layersPerPallet int64
	}{
		{"zero feet per layer", decimal.Zero, 10},
		{"negative feet per layer", decimal.NewFromInt(-100), 10},
		{"zero layers per pallet", decimal.NewFromInt(100), 0},
		{"negative layers per pallet", decimal.NewFromInt(100), -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPackingSpec(tc.feetPerLayer, tc.layersPerPallet)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !errors.Is(err, ErrInvalidPackingSpec) {
				t.Errorf("Expected ErrInvalidPackingSpec, got %v", err)
			}
		})
	}
}

func TestPalletBreakdown_TotalLayers(t *testing.T) {
	testCases := []struct {
		name     string
		pallets  int64
		layers   int64
		perPall  int64
		expected int64
	}{
		{"zero breakdown", 0, 0, 10, 0},
		{"layers only", 0, 3, 10, 3},
		{"pallets only", 2, 0, 10, 20},
		{"pallets and layers", 2, 3, 10, 23},
		{"negative pallet borrow", -1, 0, 10, -10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := PalletBreakdown{Pallets: tc.pallets, Layers: tc.layers}
			if got := b.TotalLayers(tc.perPall); got != tc.expected {
				t.Errorf("Expected total layers %d, got %d", tc.expected, got)
			}
		})
	}
}
