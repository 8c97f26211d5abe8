package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SKU represents a unique product variant identifier
type SKU string

// Variant represents a sellable product variant in the distributor catalog
type Variant struct {
	ID               uuid.UUID
	SKU              SKU
	Description      string
	ManufacturerCode string
	Unit             UnitOfMeasure
	FeetPerLayer     decimal.Decimal // zero means not specified
	LayersPerPallet  int64           // zero means not specified
	UnitPrice        decimal.Decimal
	Transient        bool
}

// NewVariant creates a validated Variant
func NewVariant(sku SKU, description, manufacturerCode string, unit UnitOfMeasure, feetPerLayer decimal.Decimal, layersPerPallet int64, unitPrice decimal.Decimal) (*Variant, error) {
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if unit == "" {
		return nil, fmt.Errorf("unit of measure cannot be empty")
	}
	if feetPerLayer.IsNegative() {
		return nil, fmt.Errorf("feet per layer cannot be negative, got %s", feetPerLayer)
	}
	if layersPerPallet < 0 {
		return nil, fmt.Errorf("layers per pallet cannot be negative, got %d", layersPerPallet)
	}

	return &Variant{
		ID:               uuid.New(),
		SKU:              sku,
		Description:      description,
		ManufacturerCode: manufacturerCode,
		Unit:             unit,
		FeetPerLayer:     feetPerLayer,
		LayersPerPallet:  layersPerPallet,
		UnitPrice:        unitPrice,
	}, nil
}

// IsLayered reports whether the variant is measured in a layered unit
func (v *Variant) IsLayered() bool {
	return v.Unit.IsLayered()
}

// EffectivePackingSpec resolves the variant's packing constants, falling
// back to the supplied defaults for any constant the variant leaves at
// zero. The substitution happens here, before the arithmetic runs; the
// arithmetic itself rejects non-positive constants.
func (v *Variant) EffectivePackingSpec(defaults PackingSpec) (PackingSpec, error) {
	feetPerLayer := v.FeetPerLayer
	if feetPerLayer.IsZero() {
		feetPerLayer = defaults.FeetPerLayer
	}
	layersPerPallet := v.LayersPerPallet
	if layersPerPallet == 0 {
		layersPerPallet = defaults.LayersPerPallet
	}
	return NewPackingSpec(feetPerLayer, layersPerPallet)
}
