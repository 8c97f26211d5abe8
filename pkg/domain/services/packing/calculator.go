package packing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
)

// Calculator implements the pallet/layer conversion and stock projection
// arithmetic shared by every order, receiving, and adjustment flow. It is
// stateless and safe for concurrent use from multiple goroutines.
type Calculator struct{}

// NewCalculator creates a new Calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// QuantityToBreakdown converts a flat quantity into full pallets plus
// leftover layers under the given packing spec. A partial layer consumes
// a whole layer of packing, so the layer count always rounds up in
// magnitude. A zero quantity yields a zero breakdown.
func (c *Calculator) QuantityToBreakdown(quantity decimal.Decimal, spec entities.PackingSpec) (entities.PalletBreakdown, error) {
	if err := spec.Validate(); err != nil {
		return entities.PalletBreakdown{}, err
	}
	if quantity.IsZero() {
		return entities.PalletBreakdown{}, nil
	}

	totalLayers := layersFor(quantity, spec.FeetPerLayer)
	return decompose(totalLayers, spec.LayersPerPallet), nil
}

// BreakdownToQuantity converts a pallet/layer pair back into a flat
// quantity. This is the exact inverse of the total-layers computation;
// a round trip through QuantityToBreakdown is stable only when the
// original quantity was already a whole number of layers.
func (c *Calculator) BreakdownToQuantity(breakdown entities.PalletBreakdown, spec entities.PackingSpec) (decimal.Decimal, error) {
	if err := spec.Validate(); err != nil {
		return decimal.Zero, err
	}

	totalLayers := breakdown.TotalLayers(spec.LayersPerPallet)
	return decimal.NewFromInt(totalLayers).Mul(spec.FeetPerLayer), nil
}

// RoundQuantityUp returns the smallest quantity that is a whole number of
// layers and covers the requested quantity. Idempotent: rounding an
// already-rounded quantity changes nothing. Negative quantities round up
// in magnitude with the sign preserved.
func (c *Calculator) RoundQuantityUp(quantity, feetPerLayer decimal.Decimal) (decimal.Decimal, error) {
	if !feetPerLayer.IsPositive() {
		return decimal.Zero, fmt.Errorf("feet per layer must be positive, got %s: %w", feetPerLayer, entities.ErrInvalidPackingSpec)
	}

	totalLayers := layersFor(quantity, feetPerLayer)
	return decimal.NewFromInt(totalLayers).Mul(feetPerLayer), nil
}

// ApplyStockChange computes the stock level after applying a signed
// change. The result may go negative; oversold stock is a valid state
// reported as data, never an error.
//
// For layered units the current level's pallet/layer fields are
// authoritative and the quantity is recomputed from the new layer total.
// The usePalletsLayers flag selects whether the change's pallet/layer
// fields or its flat quantity drive the arithmetic.
func (c *Calculator) ApplyStockChange(current entities.StockLevel, change entities.StockChange, spec entities.PackingSpec, isLayered, usePalletsLayers bool) (entities.StockLevel, error) {
	// Simple units are plain counts: the quantity adds and the
	// pallet/layer fields pass through untouched.
	if !isLayered {
		result := current
		result.Quantity = current.Quantity.Add(change.Quantity)
		return result, nil
	}

	if err := spec.Validate(); err != nil {
		return entities.StockLevel{}, err
	}

	// Step 1: flatten the current position into total layers
	currentLayers := current.Pallets*spec.LayersPerPallet + current.Layers

	// Step 2: flatten the change the same way
	var changeLayers int64
	if usePalletsLayers {
		changeLayers = change.Pallets*spec.LayersPerPallet + change.Layers
	} else {
		// The flat quantity is expected to be a whole number of layers
		// already; a partial layer still consumes a full layer.
		changeLayers = layersFor(change.Quantity, spec.FeetPerLayer)
	}

	// Step 3: add and decompose back into pallets and layers
	newTotal := currentLayers + changeLayers
	breakdown := decompose(newTotal, spec.LayersPerPallet)

	result := current
	result.Quantity = decimal.NewFromInt(newTotal).Mul(spec.FeetPerLayer)
	result.Pallets = breakdown.Pallets
	result.Layers = breakdown.Layers
	return result, nil
}

// layersFor converts a quantity into whole layers, rounding the magnitude
// up and preserving the sign
func layersFor(quantity, feetPerLayer decimal.Decimal) int64 {
	exact := quantity.Div(feetPerLayer)
	if exact.IsNegative() {
		return exact.Floor().IntPart()
	}
	return exact.Ceil().IntPart()
}

// decompose splits a total layer count into pallets and leftover layers.
// Truncating division leaves a negative remainder when the total is
// negative; one pallet is borrowed so the layer count stays in
// [0, layersPerPallet).
func decompose(totalLayers, layersPerPallet int64) entities.PalletBreakdown {
	pallets := totalLayers / layersPerPallet
	layers := totalLayers - pallets*layersPerPallet
	if layers < 0 {
		pallets--
		layers += layersPerPallet
	}
	return entities.PalletBreakdown{Pallets: pallets, Layers: layers}
}
