package memory

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
)

func TestVariantRepository_Save(t *testing.T) {
	repo := NewVariantRepository()

	variant := &entities.Variant{
		SKU:              "FLR-OAK-5",
		Description:      "Oak Plank 5in",
		ManufacturerCode: "ACME",
		Unit:             entities.UnitSquareFeet,
		FeetPerLayer:     decimal.NewFromInt(100),
		LayersPerPallet:  10,
		UnitPrice:        decimal.NewFromFloat(4.25),
	}

	// Save variant
	err := repo.Save(variant)
	if err != nil {
		t.Fatalf("Failed to save variant: %v", err)
	}

	// Retrieve variant
	retrieved, err := repo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to get variant: %v", err)
	}

	if retrieved.SKU != variant.SKU {
		t.Errorf("Expected SKU %s, got %s", variant.SKU, retrieved.SKU)
	}

	if retrieved.Description != variant.Description {
		t.Errorf("Expected description %s, got %s", variant.Description, retrieved.Description)
	}

	if !retrieved.FeetPerLayer.Equal(variant.FeetPerLayer) {
		t.Errorf("Expected feet per layer %s, got %s", variant.FeetPerLayer, retrieved.FeetPerLayer)
	}

	if retrieved.LayersPerPallet != variant.LayersPerPallet {
		t.Errorf("Expected layers per pallet %d, got %d", variant.LayersPerPallet, retrieved.LayersPerPallet)
	}
}

func TestVariantRepository_Save_Replaces(t *testing.T) {
	repo := NewVariantRepository()

	first := &entities.Variant{
		SKU:         "FLR-OAK-5",
		Description: "Oak Plank 5in",
		Unit:        entities.UnitSquareFeet,
	}
	if err := repo.Save(first); err != nil {
		t.Fatalf("Failed to save variant: %v", err)
	}

	second := &entities.Variant{
		SKU:         "FLR-OAK-5",
		Description: "Oak Plank 5in Select Grade",
		Unit:        entities.UnitSquareFeet,
	}
	if err := repo.Save(second); err != nil {
		t.Fatalf("Failed to save replacement variant: %v", err)
	}

	retrieved, err := repo.GetBySKU("FLR-OAK-5")
	if err != nil {
		t.Fatalf("Failed to get variant: %v", err)
	}
	if retrieved.Description != "Oak Plank 5in Select Grade" {
		t.Errorf("Expected replacement description, got %s", retrieved.Description)
	}
}

func TestVariantRepository_GetBySKU_NotFound(t *testing.T) {
	repo := NewVariantRepository()

	_, err := repo.GetBySKU("NONEXISTENT")
	if err == nil {
		t.Fatal("Expected error for nonexistent variant, got none")
	}

	if !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}

	if !strings.Contains(err.Error(), "NONEXISTENT") {
		t.Errorf("Expected error message to contain the SKU, got: %v", err)
	}
}

func TestVariantRepository_LoadVariants_WithDuplicates(t *testing.T) {
	repo := NewVariantRepository()

	variants := []*entities.Variant{
		{SKU: "FLR-OAK-5", Description: "Oak Plank 5in", Unit: entities.UnitSquareFeet},
		{SKU: "TRM-QTR-RND", Description: "Quarter Round Trim", Unit: entities.UnitLinearFeet},
		{SKU: "FLR-OAK-5", Description: "Oak Plank 5in Duplicate", Unit: entities.UnitSquareFeet},
	}

	err := repo.LoadVariants(variants)
	if err == nil {
		t.Fatal("Expected error when loading variants with duplicates, got none")
	}

	if !strings.Contains(err.Error(), "duplicate SKUs found") {
		t.Errorf("Expected error message to contain 'duplicate SKUs found', got: %v", err)
	}

	if !strings.Contains(err.Error(), "FLR-OAK-5") {
		t.Errorf("Expected error message to contain 'FLR-OAK-5', got: %v", err)
	}
}

func TestVariantRepository_GetAll_Sorted(t *testing.T) {
	repo := NewVariantRepository()

	variants := []*entities.Variant{
		{SKU: "TRM-QTR-RND", Description: "Quarter Round Trim", Unit: entities.UnitLinearFeet},
		{SKU: "ADH-TROWEL", Description: "Adhesive Trowel", Unit: entities.UnitEach},
		{SKU: "FLR-OAK-5", Description: "Oak Plank 5in", Unit: entities.UnitSquareFeet},
	}
	if err := repo.LoadVariants(variants); err != nil {
		t.Fatalf("Failed to load variants: %v", err)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("Failed to get all variants: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(all))
	}

	expected := []entities.SKU{"ADH-TROWEL", "FLR-OAK-5", "TRM-QTR-RND"}
	for i, sku := range expected {
		if all[i].SKU != sku {
			t.Errorf("Expected SKU %s at position %d, got %s", sku, i, all[i].SKU)
		}
	}
}

func TestVariantRepository_GetByManufacturer(t *testing.T) {
	repo := NewVariantRepository()

	variants := []*entities.Variant{
		{SKU: "FLR-OAK-5", Description: "Oak Plank 5in", ManufacturerCode: "ACME", Unit: entities.UnitSquareFeet},
		{SKU: "FLR-MPL-3", Description: "Maple Plank 3in", ManufacturerCode: "ACME", Unit: entities.UnitSquareFeet},
		{SKU: "TRM-QTR-RND", Description: "Quarter Round Trim", ManufacturerCode: "TRIMCO", Unit: entities.UnitLinearFeet},
	}
	if err := repo.LoadVariants(variants); err != nil {
		t.Fatalf("Failed to load variants: %v", err)
	}

	acme, err := repo.GetByManufacturer("ACME")
	if err != nil {
		t.Fatalf("Failed to get variants by manufacturer: %v", err)
	}

	if len(acme) != 2 {
		t.Fatalf("Expected 2 ACME variants, got %d", len(acme))
	}
	if acme[0].SKU != "FLR-MPL-3" || acme[1].SKU != "FLR-OAK-5" {
		t.Errorf("Expected sorted ACME variants, got %s and %s", acme[0].SKU, acme[1].SKU)
	}
}
