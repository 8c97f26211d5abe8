package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestStockChange_Add(t *testing.T) {
	c1 := StockChange{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(-300), Pallets: -3, Layers: 0, PalletsAuthoritative: true}
	c2 := StockChange{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(100), Pallets: 0, Layers: 10, PalletsAuthoritative: true}

	sum := c1.Add(c2)
	if !sum.Quantity.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("Expected combined quantity -200, got %s", sum.Quantity)
	}
	if sum.Pallets != -3 {
		t.Errorf("Expected combined pallets -3, got %d", sum.Pallets)
	}
	if sum.Layers != 10 {
		t.Errorf("Expected combined layers 10, got %d", sum.Layers)
	}
	if !sum.PalletsAuthoritative {
		t.Errorf("Expected combined change to stay pallet-authoritative")
	}

	// Mixing in a quantity-driven change makes the sum quantity-driven.
	c3 := StockChange{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(100)}
	if mixed := sum.Add(c3); mixed.PalletsAuthoritative {
		t.Errorf("Expected mixed-authority sum to be quantity-driven")
	}
}

func TestStockChange_Negate(t *testing.T) {
	c := StockChange{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(500), Pallets: 1, Layers: -3}
	n := c.Negate()

	if !n.Quantity.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("Expected negated quantity -500, got %s", n.Quantity)
	}
	if n.Pallets != -1 || n.Layers != 3 {
		t.Errorf("Expected negated breakdown (-1, 3), got (%d, %d)", n.Pallets, n.Layers)
	}
	if !n.Negate().Quantity.Equal(c.Quantity) {
		t.Errorf("Expected double negation to restore the original quantity")
	}
}

func TestStockLevel_IsOversold(t *testing.T) {
	level, err := NewStockLevel("FLR-OAK-5", decimal.NewFromInt(-1000), -1, 0)
	if err != nil {
		t.Fatalf("Expected oversold level creation to succeed: %v", err)
	}
	if !level.IsOversold() {
		t.Errorf("Expected negative quantity to report oversold")
	}

	positive := StockLevel{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(200)}
	if positive.IsOversold() {
		t.Errorf("Expected positive quantity not to report oversold")
	}

	if _, err := NewStockLevel("", decimal.Zero, 0, 0); err == nil {
		t.Fatalf("Expected error for empty sku, but got none")
	}
}

func TestNewStockMovement(t *testing.T) {
	change := StockChange{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(-300), Pallets: -3}
	result := StockLevel{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(-100), Pallets: -1, Layers: 9}

	m := NewStockMovement("FLR-OAK-5", ReasonOrderPlaced, "ORD-1001", change, result, false)
	if m.ID == uuid.Nil {
		t.Errorf("Expected movement to receive an identity")
	}
	if !m.Quantity.Equal(change.Quantity) {
		t.Errorf("Expected movement delta %s, got %s", change.Quantity, m.Quantity)
	}
	if !m.NewQuantity.Equal(result.Quantity) {
		t.Errorf("Expected resulting quantity %s, got %s", result.Quantity, m.NewQuantity)
	}
	if m.Reason.String() != "OrderPlaced" {
		t.Errorf("Expected reason OrderPlaced, got %s", m.Reason)
	}
	if m.OccurredAt.IsZero() {
		t.Errorf("Expected movement timestamp to be set")
	}
}
