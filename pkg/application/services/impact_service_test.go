package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	testhelpers "github.com/ledgewood/inventory/pkg/infrastructure/testing"
)

func testDefaults() entities.PackingSpec {
	return entities.PackingSpec{
		FeetPerLayer:    decimal.NewFromInt(100),
		LayersPerPallet: 10,
	}
}

func newTestImpactService() *ImpactService {
	variantRepo, stockRepo := testhelpers.BuildDistributorTestData()
	return NewImpactService(variantRepo, stockRepo, testDefaults())
}

func TestImpactService_ProjectChanges(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	changes := []entities.StockChange{
		{
			SKU:                  "FLR-OAK-5",
			Quantity:             decimal.NewFromInt(-300),
			Pallets:              -3,
			Layers:               0,
			PalletsAuthoritative: true,
		},
		{
			SKU:      "ADH-TROWEL",
			Quantity: decimal.NewFromInt(-10),
		},
	}

	result, err := service.ProjectChanges(ctx, changes)
	if err != nil {
		t.Fatalf("Failed to project changes: %v", err)
	}

	if len(result.Projections) != 2 {
		t.Fatalf("Expected 2 projections, got %d", len(result.Projections))
	}

	// Pallet fields drive the layered projection: 23 stored layers minus
	// 30 removed leaves -7, which breaks down to -1 pallet + 3 layers
	oak := result.Projections[0]
	if oak.SKU != "FLR-OAK-5" {
		t.Errorf("Expected first projection for FLR-OAK-5, got %s", oak.SKU)
	}
	if oak.Description != "Oak Plank 5in" {
		t.Errorf("Expected catalog description, got %s", oak.Description)
	}
	if !oak.Current.Quantity.Equal(decimal.NewFromInt(2300)) {
		t.Errorf("Expected current quantity 2300, got %s", oak.Current.Quantity)
	}
	if !oak.Projected.Quantity.Equal(decimal.NewFromInt(-700)) {
		t.Errorf("Expected projected quantity -700, got %s", oak.Projected.Quantity)
	}
	if oak.Projected.Pallets != -1 || oak.Projected.Layers != 3 {
		t.Errorf("Expected projected breakdown (-1, 3), got (%d, %d)", oak.Projected.Pallets, oak.Projected.Layers)
	}
	if !oak.Oversold {
		t.Error("Expected oak projection to be flagged oversold")
	}

	trowel := result.Projections[1]
	if !trowel.Projected.Quantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected projected quantity 30, got %s", trowel.Projected.Quantity)
	}
	if trowel.Projected.Pallets != 0 || trowel.Projected.Layers != 0 {
		t.Errorf("Expected simple unit to keep zero breakdown, got (%d, %d)", trowel.Projected.Pallets, trowel.Projected.Layers)
	}
	if trowel.Oversold {
		t.Error("Expected trowel projection not to be oversold")
	}

	oversold := result.OversoldSKUs()
	if len(oversold) != 1 || oversold[0] != "FLR-OAK-5" {
		t.Errorf("Expected oversold SKUs [FLR-OAK-5], got %v", oversold)
	}
}

func TestImpactService_ProjectChanges_NetsSameSKU(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	// Two removals for the same trim variant net to -250, which still
	// consumes three whole layers
	changes := []entities.StockChange{
		{SKU: "TRM-QTR-RND", Quantity: decimal.NewFromInt(-120)},
		{SKU: "TRM-QTR-RND", Quantity: decimal.NewFromInt(-130)},
	}

	result, err := service.ProjectChanges(ctx, changes)
	if err != nil {
		t.Fatalf("Failed to project changes: %v", err)
	}

	if len(result.Projections) != 1 {
		t.Fatalf("Expected 1 netted projection, got %d", len(result.Projections))
	}

	trim := result.Projections[0]
	if !trim.Change.Quantity.Equal(decimal.NewFromInt(-250)) {
		t.Errorf("Expected netted change -250, got %s", trim.Change.Quantity)
	}
	if !trim.Projected.Quantity.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected projected quantity 200, got %s", trim.Projected.Quantity)
	}
	if trim.Projected.Pallets != 0 || trim.Projected.Layers != 2 {
		t.Errorf("Expected projected breakdown (0, 2), got (%d, %d)", trim.Projected.Pallets, trim.Projected.Layers)
	}
}

func TestImpactService_ProjectChanges_TransientAndUnknown(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	changes := []entities.StockChange{
		{SKU: "FLR-HIC-7", Quantity: decimal.NewFromInt(-100)},
		{SKU: "GHOST-SKU", Quantity: decimal.NewFromInt(-5)},
	}

	result, err := service.ProjectChanges(ctx, changes)
	if err != nil {
		t.Fatalf("Failed to project changes: %v", err)
	}

	if len(result.Projections) != 0 {
		t.Errorf("Expected no projections, got %d", len(result.Projections))
	}
	if len(result.Transient) != 2 {
		t.Fatalf("Expected 2 transient lines, got %d", len(result.Transient))
	}

	hickory := result.Transient[0]
	if hickory.SKU != "FLR-HIC-7" {
		t.Errorf("Expected transient line for FLR-HIC-7, got %s", hickory.SKU)
	}
	if hickory.Note != "variant not yet saved to catalog" {
		t.Errorf("Expected transient note for cataloged draft, got %q", hickory.Note)
	}
	if hickory.Unit != entities.UnitSquareFeet {
		t.Errorf("Expected unit %s, got %s", entities.UnitSquareFeet, hickory.Unit)
	}

	ghost := result.Transient[1]
	if ghost.Note != "variant not in catalog" {
		t.Errorf("Expected transient note for unknown variant, got %q", ghost.Note)
	}
	if !ghost.Quantity.Equal(decimal.NewFromInt(-5)) {
		t.Errorf("Expected transient quantity -5, got %s", ghost.Quantity)
	}
}

func TestImpactService_ProjectChanges_MissingStockWarns(t *testing.T) {
	ctx := context.Background()
	variantRepo, stockRepo := testhelpers.BuildSimpleTestData()
	service := NewImpactService(variantRepo, stockRepo, testDefaults())

	// ADH-TROWEL is cataloged but has no stock record
	changes := []entities.StockChange{
		{SKU: "ADH-TROWEL", Quantity: decimal.NewFromInt(25)},
	}

	result, err := service.ProjectChanges(ctx, changes)
	if err != nil {
		t.Fatalf("Failed to project changes: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0] != "No stock record for ADH-TROWEL; projecting from zero" {
		t.Errorf("Unexpected warning: %q", result.Warnings[0])
	}

	projection, ok := result.ProjectionFor("ADH-TROWEL")
	if !ok {
		t.Fatal("Expected a projection for ADH-TROWEL")
	}
	if !projection.Current.Quantity.IsZero() {
		t.Errorf("Expected current quantity 0, got %s", projection.Current.Quantity)
	}
	if !projection.Projected.Quantity.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected projected quantity 25, got %s", projection.Projected.Quantity)
	}
}

func TestImpactService_ProjectChanges_SkipsZeroChange(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	changes := []entities.StockChange{
		{SKU: "FLR-OAK-5", Quantity: decimal.Zero},
	}

	result, err := service.ProjectChanges(ctx, changes)
	if err != nil {
		t.Fatalf("Failed to project changes: %v", err)
	}
	if len(result.Projections) != 0 || len(result.Transient) != 0 || len(result.Warnings) != 0 {
		t.Errorf("Expected empty result for zero change, got %d projections, %d transient, %d warnings",
			len(result.Projections), len(result.Transient), len(result.Warnings))
	}
}

func TestImpactService_ProjectOrderDiff_Edit(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	before := []entities.OrderLine{
		{SKU: "FLR-OAK-5", Unit: entities.UnitSquareFeet, Quantity: decimal.NewFromInt(300), Layers: 3},
	}
	after := []entities.OrderLine{
		{SKU: "FLR-OAK-5", Unit: entities.UnitSquareFeet, Quantity: decimal.NewFromInt(500), Layers: 5},
	}

	result, err := service.ProjectOrderDiff(ctx, before, after)
	if err != nil {
		t.Fatalf("Failed to project order diff: %v", err)
	}

	projection, ok := result.ProjectionFor("FLR-OAK-5")
	if !ok {
		t.Fatal("Expected a projection for FLR-OAK-5")
	}

	// Growing the line from 300 to 500 removes a net 200 sq ft
	if !projection.Change.Quantity.Equal(decimal.NewFromInt(-200)) {
		t.Errorf("Expected net change -200, got %s", projection.Change.Quantity)
	}
	if !projection.Projected.Quantity.Equal(decimal.NewFromInt(2100)) {
		t.Errorf("Expected projected quantity 2100, got %s", projection.Projected.Quantity)
	}
	if projection.Projected.Pallets != 2 || projection.Projected.Layers != 1 {
		t.Errorf("Expected projected breakdown (2, 1), got (%d, %d)", projection.Projected.Pallets, projection.Projected.Layers)
	}
}

func TestImpactService_ProjectOrderDiff_CancelRestores(t *testing.T) {
	ctx := context.Background()
	service := newTestImpactService()

	lines := []entities.OrderLine{
		{SKU: "FLR-OAK-5", Unit: entities.UnitSquareFeet, Quantity: decimal.NewFromInt(300), Layers: 3},
	}

	result, err := service.ProjectOrderDiff(ctx, lines, nil)
	if err != nil {
		t.Fatalf("Failed to project order diff: %v", err)
	}

	projection, ok := result.ProjectionFor("FLR-OAK-5")
	if !ok {
		t.Fatal("Expected a projection for FLR-OAK-5")
	}
	if !projection.Change.Quantity.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected restoring change 300, got %s", projection.Change.Quantity)
	}
	if !projection.Projected.Quantity.Equal(decimal.NewFromInt(2600)) {
		t.Errorf("Expected projected quantity 2600, got %s", projection.Projected.Quantity)
	}
	if projection.Projected.Pallets != 2 || projection.Projected.Layers != 6 {
		t.Errorf("Expected projected breakdown (2, 6), got (%d, %d)", projection.Projected.Pallets, projection.Projected.Layers)
	}
}
