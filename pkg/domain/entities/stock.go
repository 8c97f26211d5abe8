package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel represents a snapshot of on-hand inventory for one variant.
// Quantity and the pallet/layer pair are kept consistent through the
// packing arithmetic for layered units; for simple units the pallet and
// layer fields stay zero and carry no meaning.
type StockLevel struct {
	SKU       SKU
	Quantity  decimal.Decimal
	Pallets   int64
	Layers    int64
	UpdatedAt time.Time
}

// NewStockLevel creates a validated StockLevel
func NewStockLevel(sku SKU, quantity decimal.Decimal, pallets, layers int64) (*StockLevel, error) {
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	return &StockLevel{
		SKU:      sku,
		Quantity: quantity,
		Pallets:  pallets,
		Layers:   layers,
	}, nil
}

// Breakdown returns the pallet/layer pair of this level
func (s *StockLevel) Breakdown() PalletBreakdown {
	return PalletBreakdown{Pallets: s.Pallets, Layers: s.Layers}
}

// IsOversold reports whether the on-hand quantity has gone negative
func (s *StockLevel) IsOversold() bool {
	return s.Quantity.IsNegative()
}

// StockChange represents a pending signed adjustment to one variant's
// stock: positive adds, negative removes. For layered units the pallet
// and layer fields carry the same adjustment in packed form, and
// PalletsAuthoritative records which representation the caller entered.
// The arithmetic itself takes the authoritative flag as an explicit
// argument so the choice is always visible at the call site.
type StockChange struct {
	SKU                  SKU
	Quantity             decimal.Decimal
	Pallets              int64
	Layers               int64
	PalletsAuthoritative bool
}

// Add returns the componentwise sum of two changes for the same variant
func (c StockChange) Add(other StockChange) StockChange {
	return StockChange{
		SKU:                  c.SKU,
		Quantity:             c.Quantity.Add(other.Quantity),
		Pallets:              c.Pallets + other.Pallets,
		Layers:               c.Layers + other.Layers,
		PalletsAuthoritative: c.PalletsAuthoritative && other.PalletsAuthoritative,
	}
}

// Negate returns the change with every component's sign flipped
func (c StockChange) Negate() StockChange {
	return StockChange{
		SKU:                  c.SKU,
		Quantity:             c.Quantity.Neg(),
		Pallets:              -c.Pallets,
		Layers:               -c.Layers,
		PalletsAuthoritative: c.PalletsAuthoritative,
	}
}

// IsZero reports whether the change adjusts nothing
func (c StockChange) IsZero() bool {
	return c.Quantity.IsZero() && c.Pallets == 0 && c.Layers == 0
}

// MovementReason represents why a stock level changed
type MovementReason int

const (
	ReasonOrderPlaced MovementReason = iota
	ReasonOrderEdited
	ReasonOrderCanceled
	ReasonPurchaseReceived
	ReasonReturnRestocked
	ReasonManualAdjustment
)

// String method for MovementReason enum
func (r MovementReason) String() string {
	switch r {
	case ReasonOrderPlaced:
		return "OrderPlaced"
	case ReasonOrderEdited:
		return "OrderEdited"
	case ReasonOrderCanceled:
		return "OrderCanceled"
	case ReasonPurchaseReceived:
		return "PurchaseReceived"
	case ReasonReturnRestocked:
		return "ReturnRestocked"
	case ReasonManualAdjustment:
		return "ManualAdjustment"
	default:
		return "Unknown"
	}
}

// StockMovement represents the audit record written each time a stock
// level changes: the signed delta that was applied, the resulting level,
// and whether a negative result was clamped to zero at commit.
type StockMovement struct {
	ID          uuid.UUID
	SKU         SKU
	Reason      MovementReason
	Reference   string
	Quantity    decimal.Decimal
	Pallets     int64
	Layers      int64
	NewQuantity decimal.Decimal
	NewPallets  int64
	NewLayers   int64
	Clamped     bool
	OccurredAt  time.Time
}

// NewStockMovement creates a movement record with a fresh identity
func NewStockMovement(sku SKU, reason MovementReason, reference string, change StockChange, result StockLevel, clamped bool) *StockMovement {
	return &StockMovement{
		ID:          uuid.New(),
		SKU:         sku,
		Reason:      reason,
		Reference:   reference,
		Quantity:    change.Quantity,
		Pallets:     change.Pallets,
		Layers:      change.Layers,
		NewQuantity: result.Quantity,
		NewPallets:  result.Pallets,
		NewLayers:   result.Layers,
		Clamped:     clamped,
		OccurredAt:  time.Now(),
	}
}
