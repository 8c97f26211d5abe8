package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a customer order
type OrderStatus int

const (
	OrderDraft OrderStatus = iota
	OrderPlaced
	OrderCanceled
)

// String method for OrderStatus enum
func (s OrderStatus) String() string {
	switch s {
	case OrderDraft:
		return "Draft"
	case OrderPlaced:
		return "Placed"
	case OrderCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// OrderLine represents a single variant and quantity on a customer order.
// For layered units the pallet/layer pair mirrors the quantity, and
// PalletsAuthoritative records which fields the user actually entered.
type OrderLine struct {
	ID                   uuid.UUID
	SKU                  SKU
	Description          string
	Unit                 UnitOfMeasure
	Quantity             decimal.Decimal
	Pallets              int64
	Layers               int64
	PalletsAuthoritative bool
	UnitPrice            decimal.Decimal
}

// NewOrderLine creates a validated OrderLine
func NewOrderLine(sku SKU, description string, unit UnitOfMeasure, quantity, unitPrice decimal.Decimal) (*OrderLine, error) {
	if sku == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("line quantity must be positive, got %s", quantity)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}

	return &OrderLine{
		ID:          uuid.New(),
		SKU:         sku,
		Description: description,
		Unit:        unit,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// Total returns the extended price of the line
func (l OrderLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// StockDelta returns the signed stock adjustment caused by placing this
// line. An order line removes stock, so every component is negated.
func (l OrderLine) StockDelta() StockChange {
	return StockChange{
		SKU:                  l.SKU,
		Quantity:             l.Quantity.Neg(),
		Pallets:              -l.Pallets,
		Layers:               -l.Layers,
		PalletsAuthoritative: l.PalletsAuthoritative,
	}
}

// CustomerOrder represents a customer order with its line items
type CustomerOrder struct {
	ID           uuid.UUID
	Number       string
	CustomerCode string
	Status       OrderStatus
	Lines        []OrderLine
	CreatedAt    time.Time
}

// NewCustomerOrder creates a draft order with no lines
func NewCustomerOrder(number, customerCode string) (*CustomerOrder, error) {
	if number == "" {
		return nil, fmt.Errorf("order number cannot be empty")
	}
	if customerCode == "" {
		return nil, fmt.Errorf("customer code cannot be empty")
	}

	return &CustomerOrder{
		ID:           uuid.New(),
		Number:       number,
		CustomerCode: customerCode,
		Status:       OrderDraft,
		Lines:        make([]OrderLine, 0),
		CreatedAt:    time.Now(),
	}, nil
}

// AddLine appends a line item to the order
func (o *CustomerOrder) AddLine(line OrderLine) {
	o.Lines = append(o.Lines, line)
}

// Total sums the extended prices of all lines
func (o *CustomerOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total())
	}
	return total
}
