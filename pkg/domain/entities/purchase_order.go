package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus int

const (
	PurchaseOpen PurchaseOrderStatus = iota
	PurchaseReceived
	PurchaseCanceled
)

// String method for PurchaseOrderStatus enum
func (s PurchaseOrderStatus) String() string {
	switch s {
	case PurchaseOpen:
		return "Open"
	case PurchaseReceived:
		return "Received"
	case PurchaseCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// PurchaseOrderLine represents incoming stock for one variant on a
// purchase order
type PurchaseOrderLine struct {
	ID                   uuid.UUID
	SKU                  SKU
	Description          string
	Unit                 UnitOfMeasure
	Quantity             decimal.Decimal
	Pallets              int64
	Layers               int64
	PalletsAuthoritative bool
	UnitCost             decimal.Decimal
}

// NewPurchaseOrderLine creates a validated PurchaseOrderLine
func NewPurchaseOrderLine(sku SKU, description string, unit UnitOfMeasure, quantity, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("line quantity must be positive, got %s", quantity)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}

	return &PurchaseOrderLine{
		ID:          uuid.New(),
		SKU:         sku,
		Description: description,
		Unit:        unit,
		Quantity:    quantity,
		UnitCost:    unitCost,
	}, nil
}

// StockDelta returns the signed stock adjustment caused by receiving this
// line. Received stock adds, so every component keeps its sign.
func (l PurchaseOrderLine) StockDelta() StockChange {
	return StockChange{
		SKU:                  l.SKU,
		Quantity:             l.Quantity,
		Pallets:              l.Pallets,
		Layers:               l.Layers,
		PalletsAuthoritative: l.PalletsAuthoritative,
	}
}

// PurchaseOrder represents an order placed with a manufacturer for
// incoming stock
type PurchaseOrder struct {
	ID               uuid.UUID
	Number           string
	ManufacturerCode string
	Status           PurchaseOrderStatus
	Lines            []PurchaseOrderLine
	ExpectedAt       time.Time
	CreatedAt        time.Time
	ReceivedAt       time.Time
}

// NewPurchaseOrder creates an open purchase order with no lines
func NewPurchaseOrder(number, manufacturerCode string, expectedAt time.Time) (*PurchaseOrder, error) {
	if number == "" {
		return nil, fmt.Errorf("purchase order number cannot be empty")
	}
	if manufacturerCode == "" {
		return nil, fmt.Errorf("manufacturer code cannot be empty")
	}

	return &PurchaseOrder{
		ID:               uuid.New(),
		Number:           number,
		ManufacturerCode: manufacturerCode,
		Status:           PurchaseOpen,
		Lines:            make([]PurchaseOrderLine, 0),
		ExpectedAt:       expectedAt,
		CreatedAt:        time.Now(),
	}, nil
}

// AddLine appends a line item to the purchase order
func (p *PurchaseOrder) AddLine(line PurchaseOrderLine) {
	p.Lines = append(p.Lines, line)
}
