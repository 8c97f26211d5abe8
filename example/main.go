package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/application/services"
	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	variantRepo := memory.NewVariantRepository()
	stockRepo := memory.NewStockRepository()

	// Set up a small flooring distributor catalog
	setupDistributorCatalog(variantRepo, stockRepo)

	defaults := entities.PackingSpec{
		FeetPerLayer:    decimal.NewFromInt(100),
		LayersPerPallet: 10,
	}

	// Project the day's pending changes before committing anything
	changes := []entities.StockChange{
		{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(-1300)}, // two big oak orders
		{SKU: "TRM-QTR-RND", Quantity: decimal.NewFromInt(-650)},
		{SKU: "ADH-TROWEL", Quantity: decimal.NewFromInt(-12)},
		{SKU: "FLR-HIC-7", Quantity: decimal.NewFromInt(-500)}, // special order, not in catalog
	}

	fmt.Println("🔍 Projecting pending changes...")
	fmt.Printf("Changes to project: %d\n", len(changes))
	fmt.Println()

	impactService := services.NewImpactService(variantRepo, stockRepo, defaults)
	result, err := impactService.ProjectChanges(ctx, changes)
	if err != nil {
		fmt.Printf("❌ Projection failed: %v\n", err)
		return
	}

	// Display projections
	fmt.Println("📊 Projected Stock:")
	for _, p := range result.Projections {
		fmt.Printf("  %s: %s -> %s (%d pallets, %d layers)\n",
			p.SKU,
			p.Current.Quantity.String(),
			p.Projected.Quantity.String(),
			p.Projected.Pallets,
			p.Projected.Layers)
		if p.Oversold {
			fmt.Printf("    ⚠️  Oversold by %s\n", p.Projected.Quantity.Abs().String())
		}
	}
	fmt.Println()

	// Show transient lines
	if len(result.Transient) > 0 {
		fmt.Println("📋 Transient Lines (not projected):")
		for _, line := range result.Transient {
			fmt.Printf("  %s: %s (%s)\n", line.SKU, line.Quantity.String(), line.Note)
		}
		fmt.Println()
	}

	// Commit part of the plan through the order service
	eventStore := events.NewInMemoryEventStore()
	stockService := services.NewStockService(variantRepo, stockRepo, eventStore, defaults)
	orderRepo := memory.NewOrderRepository()
	orderService := services.NewOrderService(orderRepo, variantRepo, stockService, eventStore, defaults)

	order, err := entities.NewCustomerOrder("SO-1001", "BAYSIDE")
	if err != nil {
		fmt.Printf("❌ Order creation failed: %v\n", err)
		return
	}
	order.AddLine(entities.OrderLine{SKU: "FLR-OAK-5", Quantity: decimal.NewFromInt(750)})

	fmt.Println("📝 Placing order SO-1001 for 750 sq ft of oak...")
	if err := orderService.PlaceOrder(ctx, order, false); err != nil {
		fmt.Printf("❌ Order placement failed: %v\n", err)
		return
	}

	placed, err := orderRepo.GetByNumber("SO-1001")
	if err != nil {
		fmt.Printf("❌ Order lookup failed: %v\n", err)
		return
	}
	line := placed.Lines[0]
	fmt.Printf("  Line normalized to %s sq ft (%d pallets, %d layers)\n",
		line.Quantity.String(), line.Pallets, line.Layers)

	level, err := stockRepo.GetBySKU("FLR-OAK-5")
	if err != nil {
		fmt.Printf("❌ Stock lookup failed: %v\n", err)
		return
	}
	fmt.Printf("  Oak on hand after placement: %s (%d pallets, %d layers)\n",
		level.Quantity.String(), level.Pallets, level.Layers)
	fmt.Println()

	// Show the movement trail the order left behind
	movements, err := stockRepo.GetMovements("FLR-OAK-5")
	if err != nil {
		fmt.Printf("❌ Movement lookup failed: %v\n", err)
		return
	}

	fmt.Println("📦 Oak Movement Trail:")
	for _, m := range movements {
		fmt.Printf("  %s %s: %s -> %s on hand\n",
			m.Reason, m.Reference, m.Quantity.String(), m.NewQuantity.String())
	}
	fmt.Println()

	allEvents, err := eventStore.ReadAllEvents()
	if err != nil {
		fmt.Printf("❌ Event read failed: %v\n", err)
		return
	}
	fmt.Printf("Events recorded: %d\n", len(allEvents))
	for _, event := range allEvents {
		fmt.Printf("  %s -> %s\n", event.Type(), event.StreamID())
	}
	fmt.Println()

	fmt.Println("✅ Stock walkthrough complete!")
}

func setupDistributorCatalog(variantRepo *memory.VariantRepository, stockRepo *memory.StockRepository) {
	variants := []struct {
		sku             entities.SKU
		description     string
		manufacturer    string
		unit            entities.UnitOfMeasure
		feetPerLayer    int64
		layersPerPallet int64
		unitPrice       string
	}{
		{"FLR-OAK-5", "Oak Plank 5in", "ACME", entities.UnitSquareFeet, 100, 10, "4.25"},
		{"TRM-QTR-RND", "Quarter Round Trim", "TRIMCO", entities.UnitLinearFeet, 100, 10, "1.10"},
		{"ADH-TROWEL", "Trowel Adhesive 4gal", "BONDIT", entities.UnitEach, 0, 0, "18.50"},
	}

	for _, v := range variants {
		price, _ := decimal.NewFromString(v.unitPrice)
		variant, err := entities.NewVariant(v.sku, v.description, v.manufacturer, v.unit,
			decimal.NewFromInt(v.feetPerLayer), v.layersPerPallet, price)
		if err != nil {
			panic(err)
		}
		if err := variantRepo.Save(variant); err != nil {
			panic(err)
		}
	}

	stocks := []struct {
		sku      entities.SKU
		quantity int64
		pallets  int64
		layers   int64
	}{
		{"FLR-OAK-5", 2300, 2, 3}, // 23 layers of oak on the floor
		{"TRM-QTR-RND", 500, 0, 5},
		{"ADH-TROWEL", 40, 0, 0},
	}

	for _, s := range stocks {
		level, err := entities.NewStockLevel(s.sku, decimal.NewFromInt(s.quantity), s.pallets, s.layers)
		if err != nil {
			panic(err)
		}
		if err := stockRepo.Save(level); err != nil {
			panic(err)
		}
	}
}
