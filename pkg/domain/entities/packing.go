package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PackingSpec represents the per-variant packing constants for layered
// units: how many feet of product cover one layer, and how many layers
// stack onto a full pallet. Immutable for the duration of a calculation.
type PackingSpec struct {
	FeetPerLayer    decimal.Decimal
	LayersPerPallet int64
}

// NewPackingSpec creates a validated PackingSpec
func NewPackingSpec(feetPerLayer decimal.Decimal, layersPerPallet int64) (PackingSpec, error) {
	spec := PackingSpec{FeetPerLayer: feetPerLayer, LayersPerPallet: layersPerPallet}
	if err := spec.Validate(); err != nil {
		return PackingSpec{}, err
	}
	return spec, nil
}

// Validate checks that both packing constants are strictly positive
func (s PackingSpec) Validate() error {
	if !s.FeetPerLayer.IsPositive() {
		return fmt.Errorf("feet per layer must be positive, got %s: %w", s.FeetPerLayer, ErrInvalidPackingSpec)
	}
	if s.LayersPerPallet <= 0 {
		return fmt.Errorf("layers per pallet must be positive, got %d: %w", s.LayersPerPallet, ErrInvalidPackingSpec)
	}
	return nil
}

// String method for display in reports and error messages
func (s PackingSpec) String() string {
	return fmt.Sprintf("%s ft/layer x %d layers/pallet", s.FeetPerLayer, s.LayersPerPallet)
}

// PalletBreakdown represents a quantity decomposed into full pallets plus
// a remainder of layers. Pallets may be negative for oversold stock;
// Layers is always kept in [0, LayersPerPallet).
type PalletBreakdown struct {
	Pallets int64
	Layers  int64
}

// TotalLayers flattens the breakdown back into a single layer count
func (b PalletBreakdown) TotalLayers(layersPerPallet int64) int64 {
	return b.Pallets*layersPerPallet + b.Layers
}

// IsZero reports whether the breakdown holds no pallets and no layers
func (b PalletBreakdown) IsZero() bool {
	return b.Pallets == 0 && b.Layers == 0
}

// String method for display
func (b PalletBreakdown) String() string {
	return fmt.Sprintf("%d pallets + %d layers", b.Pallets, b.Layers)
}
