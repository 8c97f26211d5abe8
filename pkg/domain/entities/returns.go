package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the lifecycle state of a customer return
type ReturnStatus int

const (
	ReturnOpen ReturnStatus = iota
	ReturnRestocked
	ReturnRejected
)

// String method for ReturnStatus enum
func (s ReturnStatus) String() string {
	switch s {
	case ReturnOpen:
		return "Open"
	case ReturnRestocked:
		return "Restocked"
	case ReturnRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// ReturnLine represents one variant a customer is giving back. Restock
// marks whether the material is in sellable condition; only restockable
// lines flow back into stock.
type ReturnLine struct {
	ID                   uuid.UUID
	SKU                  SKU
	Unit                 UnitOfMeasure
	Quantity             decimal.Decimal
	Pallets              int64
	Layers               int64
	PalletsAuthoritative bool
	Restock              bool
}

// NewReturnLine creates a validated ReturnLine
func NewReturnLine(sku SKU, unit UnitOfMeasure, quantity decimal.Decimal, restock bool) (*ReturnLine, error) {
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("line quantity must be positive, got %s", quantity)
	}

	return &ReturnLine{
		ID:       uuid.New(),
		SKU:      sku,
		Unit:     unit,
		Quantity: quantity,
		Restock:  restock,
	}, nil
}

// StockDelta returns the signed stock adjustment caused by restocking
// this line. Returned stock adds back, so every component keeps its sign.
func (l ReturnLine) StockDelta() StockChange {
	return StockChange{
		SKU:                  l.SKU,
		Quantity:             l.Quantity,
		Pallets:              l.Pallets,
		Layers:               l.Layers,
		PalletsAuthoritative: l.PalletsAuthoritative,
	}
}

// Return represents a customer return against a previously placed order
type Return struct {
	ID           uuid.UUID
	Number       string
	OrderNumber  string
	CustomerCode string
	Status       ReturnStatus
	Lines        []ReturnLine
	CreatedAt    time.Time
}

// NewReturn creates an open return with no lines
func NewReturn(number, orderNumber, customerCode string) (*Return, error) {
	if number == "" {
		return nil, fmt.Errorf("return number cannot be empty")
	}
	if orderNumber == "" {
		return nil, fmt.Errorf("order number cannot be empty")
	}

	return &Return{
		ID:           uuid.New(),
		Number:       number,
		OrderNumber:  orderNumber,
		CustomerCode: customerCode,
		Status:       ReturnOpen,
		Lines:        make([]ReturnLine, 0),
		CreatedAt:    time.Now(),
	}, nil
}

// AddLine appends a line item to the return
func (r *Return) AddLine(line ReturnLine) {
	r.Lines = append(r.Lines, line)
}
