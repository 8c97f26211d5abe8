package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/ledgewood/inventory/pkg/infrastructure/testing"
)

func newTestOrderService() (*OrderService, *memory.OrderRepository, *memory.StockRepository, *events.InMemoryEventStore) {
	variantRepo, stockRepo := testhelpers.BuildDistributorTestData()
	orderRepo := memory.NewOrderRepository()
	store := events.NewInMemoryEventStore()
	stock := NewStockService(variantRepo, stockRepo, store, testDefaults())
	service := NewOrderService(orderRepo, variantRepo, stock, store, testDefaults())
	return service, orderRepo, stockRepo, store
}

func TestOrderService_NormalizeLine_RoundsUpToLayer(t *testing.T) {
	service, _, _, _ := newTestOrderService()

	line := entities.OrderLine{
		SKU:      "FLR-OAK-5",
		Quantity: decimal.NewFromInt(251),
	}

	normalized, err := service.NormalizeLine(line)
	if err != nil {
		t.Fatalf("Failed to normalize line: %v", err)
	}

	if !normalized.Quantity.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected quantity rounded to 300, got %s", normalized.Quantity)
	}
	if normalized.Pallets != 0 || normalized.Layers != 3 {
		t.Errorf("Expected breakdown (0, 3), got (%d, %d)", normalized.Pallets, normalized.Layers)
	}

	// Catalog fields fill in when the entered line left them blank
	if normalized.Unit != entities.UnitSquareFeet {
		t.Errorf("Expected unit %s, got %s", entities.UnitSquareFeet, normalized.Unit)
	}
	if normalized.Description != "Oak Plank 5in" {
		t.Errorf("Expected catalog description, got %s", normalized.Description)
	}
	if !normalized.UnitPrice.Equal(decimal.NewFromFloat(4.25)) {
		t.Errorf("Expected catalog unit price 4.25, got %s", normalized.UnitPrice)
	}
}

func TestOrderService_NormalizeLine_PalletEntry(t *testing.T) {
	service, _, _, _ := newTestOrderService()

	line := entities.OrderLine{
		SKU:                  "FLR-OAK-5",
		Pallets:              1,
		Layers:               2,
		PalletsAuthoritative: true,
	}

	normalized, err := service.NormalizeLine(line)
	if err != nil {
		t.Fatalf("Failed to normalize line: %v", err)
	}

	if !normalized.Quantity.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected quantity 1200 from 1 pallet + 2 layers, got %s", normalized.Quantity)
	}
	if normalized.Pallets != 1 || normalized.Layers != 2 {
		t.Errorf("Expected breakdown kept as (1, 2), got (%d, %d)", normalized.Pallets, normalized.Layers)
	}
}

func TestOrderService_NormalizeLine_SimpleUnit(t *testing.T) {
	service, _, _, _ := newTestOrderService()

	// Stray breakdown fields on a simple unit zero out
	line := entities.OrderLine{
		SKU:                  "ADH-TROWEL",
		Quantity:             decimal.NewFromInt(3),
		Pallets:              5,
		Layers:               5,
		PalletsAuthoritative: true,
	}

	normalized, err := service.NormalizeLine(line)
	if err != nil {
		t.Fatalf("Failed to normalize line: %v", err)
	}

	if !normalized.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected quantity 3, got %s", normalized.Quantity)
	}
	if normalized.Pallets != 0 || normalized.Layers != 0 {
		t.Errorf("Expected zero breakdown, got (%d, %d)", normalized.Pallets, normalized.Layers)
	}
	if normalized.PalletsAuthoritative {
		t.Error("Expected pallet authority cleared for simple unit")
	}
}

func TestOrderService_NormalizeLine_UnknownVariantUsesDefaults(t *testing.T) {
	service, _, _, _ := newTestOrderService()

	line := entities.OrderLine{
		SKU:      "GHOST-SKU",
		Unit:     entities.UnitSquareFeet,
		Quantity: decimal.NewFromInt(50),
	}

	normalized, err := service.NormalizeLine(line)
	if err != nil {
		t.Fatalf("Failed to normalize line: %v", err)
	}

	if !normalized.Quantity.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected quantity rounded to 100 by defaults, got %s", normalized.Quantity)
	}
	if normalized.Pallets != 0 || normalized.Layers != 1 {
		t.Errorf("Expected breakdown (0, 1), got (%d, %d)", normalized.Pallets, normalized.Layers)
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, stockRepo, store := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1001", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(250)})
	order.AddLine(entities.OrderLine{SKU: "ADH-TROWEL", Quantity: decimal.NewFromInt(2)})

	if err := service.PlaceOrder(ctx, order, false); err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	if order.Status != entities.OrderPlaced {
		t.Errorf("Expected order status %v, got %v", entities.OrderPlaced, order.Status)
	}

	// The oak line rounded up to a whole layer before committing
	if !order.Lines[0].Quantity.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected normalized line quantity 300, got %s", order.Lines[0].Quantity)
	}

	oak, err := stockRepo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load oak stock: %v", err)
	}
	if !oak.Quantity.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected oak stock 2000, got %s", oak.Quantity)
	}
	if oak.Pallets != 2 || oak.Layers != 0 {
		t.Errorf("Expected oak breakdown (2, 0), got (%d, %d)", oak.Pallets, oak.Layers)
	}

	trowel, err := stockRepo.GetBySKU("ADH-TROWEL")
	if err != nil {
		t.Fatalf("Failed to load trowel stock: %v", err)
	}
	if !trowel.Quantity.Equal(decimal.NewFromInt(38)) {
		t.Errorf("Expected trowel stock 38, got %s", trowel.Quantity)
	}

	saved, err := orderRepo.GetByNumber("SO-1001")
	if err != nil {
		t.Fatalf("Failed to load saved order: %v", err)
	}
	if saved.Status != entities.OrderPlaced {
		t.Errorf("Expected saved order status %v, got %v", entities.OrderPlaced, saved.Status)
	}

	movements, err := stockRepo.GetMovements("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load movements: %v", err)
	}
	if len(movements) != 1 || movements[0].Reference != "SO-1001" {
		t.Errorf("Expected 1 movement referencing SO-1001, got %d", len(movements))
	}

	published, err := store.ReadEvents("SO-1001")
	if err != nil {
		t.Fatalf("Failed to read order events: %v", err)
	}
	if len(published) != 1 || published[0].Type() != events.OrderPlacedEvent {
		t.Errorf("Expected one order placed event, got %d", len(published))
	}
}

func TestOrderService_PlaceOrder_TransientLineStaysOffStock(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, stockRepo, _ := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1002", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-HIC-7", Quantity: decimal.NewFromInt(100)})
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(100)})

	if err := service.PlaceOrder(ctx, order, false); err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	// The transient hickory line stays on the order but moved no stock
	saved, err := orderRepo.GetByNumber("SO-1002")
	if err != nil {
		t.Fatalf("Failed to load saved order: %v", err)
	}
	if len(saved.Lines) != 2 {
		t.Fatalf("Expected order to keep both lines, got %d", len(saved.Lines))
	}

	if _, err := stockRepo.GetBySKU("FLR-HIC-7"); err == nil {
		t.Error("Expected no stock record for transient variant")
	}

	oak, err := stockRepo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load oak stock: %v", err)
	}
	if !oak.Quantity.Equal(decimal.NewFromInt(2200)) {
		t.Errorf("Expected oak stock 2200, got %s", oak.Quantity)
	}
}

func TestOrderService_PlaceOrder_RequiresDraft(t *testing.T) {
	ctx := context.Background()
	service, _, _, _ := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1003", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(100)})
	order.Status = entities.OrderPlaced

	err = service.PlaceOrder(ctx, order, false)
	if err == nil {
		t.Fatal("Expected error placing a non-draft order, got none")
	}
	if !strings.Contains(err.Error(), "only draft orders can be placed") {
		t.Errorf("Expected draft guard error, got: %v", err)
	}
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, stockRepo, store := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1004", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(300)})
	if err := service.PlaceOrder(ctx, order, false); err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	newLines := []entities.OrderLine{
		{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(500)},
	}
	if err := service.UpdateOrder(ctx, "SO-1004", newLines, false); err != nil {
		t.Fatalf("Failed to update order: %v", err)
	}

	// Net effect of the edit is 200 more sq ft removed: 2000 -> 1800
	oak, err := stockRepo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load oak stock: %v", err)
	}
	if !oak.Quantity.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("Expected oak stock 1800, got %s", oak.Quantity)
	}
	if oak.Pallets != 1 || oak.Layers != 8 {
		t.Errorf("Expected oak breakdown (1, 8), got (%d, %d)", oak.Pallets, oak.Layers)
	}

	saved, err := orderRepo.GetByNumber("SO-1004")
	if err != nil {
		t.Fatalf("Failed to load saved order: %v", err)
	}
	if len(saved.Lines) != 1 {
		t.Fatalf("Expected 1 line after edit, got %d", len(saved.Lines))
	}
	if !saved.Lines[0].Quantity.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected edited line quantity 500, got %s", saved.Lines[0].Quantity)
	}

	published, err := store.ReadEvents("SO-1004")
	if err != nil {
		t.Fatalf("Failed to read order events: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("Expected placed and edited events, got %d", len(published))
	}
	if published[1].Type() != events.OrderEditedEvent {
		t.Errorf("Expected second event type %s, got %s", events.OrderEditedEvent, published[1].Type())
	}
}

func TestOrderService_UpdateOrder_RequiresPlaced(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, _, _ := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1005", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(100)})
	if err := orderRepo.Save(order); err != nil {
		t.Fatalf("Failed to save draft order: %v", err)
	}

	err = service.UpdateOrder(ctx, "SO-1005", nil, false)
	if err == nil {
		t.Fatal("Expected error editing a draft order, got none")
	}
	if !strings.Contains(err.Error(), "only placed orders can be edited") {
		t.Errorf("Expected placed guard error, got: %v", err)
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, stockRepo, store := newTestOrderService()

	order, err := entities.NewCustomerOrder("SO-1006", "CUST-ACME")
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(300)})
	if err := service.PlaceOrder(ctx, order, false); err != nil {
		t.Fatalf("Failed to place order: %v", err)
	}

	if err := service.CancelOrder(ctx, "SO-1006", "customer changed mind"); err != nil {
		t.Fatalf("Failed to cancel order: %v", err)
	}

	// Canceling restores exactly what placing removed
	oak, err := stockRepo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load oak stock: %v", err)
	}
	if !oak.Quantity.Equal(decimal.NewFromInt(2300)) {
		t.Errorf("Expected oak stock restored to 2300, got %s", oak.Quantity)
	}
	if oak.Pallets != 2 || oak.Layers != 3 {
		t.Errorf("Expected oak breakdown (2, 3), got (%d, %d)", oak.Pallets, oak.Layers)
	}

	saved, err := orderRepo.GetByNumber("SO-1006")
	if err != nil {
		t.Fatalf("Failed to load saved order: %v", err)
	}
	if saved.Status != entities.OrderCanceled {
		t.Errorf("Expected order status %v, got %v", entities.OrderCanceled, saved.Status)
	}

	movements, err := stockRepo.GetMovements("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to load movements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("Expected 2 movements, got %d", len(movements))
	}
	if movements[1].Reason != entities.ReasonOrderCanceled {
		t.Errorf("Expected second movement reason %v, got %v", entities.ReasonOrderCanceled, movements[1].Reason)
	}

	published, err := store.ReadEvents("SO-1006")
	if err != nil {
		t.Fatalf("Failed to read order events: %v", err)
	}
	if len(published) != 2 || published[1].Type() != events.OrderCanceledEvent {
		t.Fatalf("Expected placed and canceled events, got %d", len(published))
	}
}
