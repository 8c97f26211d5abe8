package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
)

// BuildDistributorTestData builds a flooring distributor scenario with layered
// and simple units plus matching stock records
func BuildDistributorTestData() (*memory.VariantRepository, *memory.StockRepository) {
	variantRepo := memory.NewVariantRepository()
	stockRepo := memory.NewStockRepository()

	// Add catalog variants
	variants := []*entities.Variant{
		{
			SKU:              "FLR-OAK-5",
			Description:      "Oak Plank 5in",
			ManufacturerCode: "ACME",
			Unit:             entities.UnitSquareFeet,
			FeetPerLayer:     decimal.NewFromInt(100),
			LayersPerPallet:  10,
			UnitPrice:        decimal.NewFromFloat(4.25),
		},
		{
			SKU:              "FLR-MPL-3",
			Description:      "Maple Plank 3in",
			ManufacturerCode: "ACME",
			Unit:             entities.UnitSquareFeet,
			FeetPerLayer:     decimal.NewFromFloat(62.5),
			LayersPerPallet:  8,
			UnitPrice:        decimal.NewFromFloat(5.10),
		},
		{
			SKU:              "TRM-QTR-RND",
			Description:      "Quarter Round Trim",
			ManufacturerCode: "TRIMCO",
			Unit:             entities.UnitLinearFeet,
			FeetPerLayer:     decimal.NewFromInt(100),
			LayersPerPallet:  10,
			UnitPrice:        decimal.NewFromFloat(1.10),
		},
		{
			SKU:              "ADH-TROWEL",
			Description:      "Adhesive Trowel",
			ManufacturerCode: "TRIMCO",
			Unit:             entities.UnitEach,
			UnitPrice:        decimal.NewFromFloat(18.50),
		},
		{
			SKU:              "UND-FOAM-RL",
			Description:      "Foam Underlayment Roll",
			ManufacturerCode: "TRIMCO",
			Unit:             entities.UnitRoll,
			UnitPrice:        decimal.NewFromFloat(22.00),
		},
		{
			SKU:              "FLR-HIC-7",
			Description:      "Hickory Plank 7in",
			ManufacturerCode: "ACME",
			Unit:             entities.UnitSquareFeet,
			UnitPrice:        decimal.NewFromFloat(6.40),
			Transient:        true,
		},
	}

	for _, variant := range variants {
		err := variantRepo.Save(variant)
		if err != nil {
			panic(err)
		}
	}

	// Add stock levels consistent with each variant's packing constants
	baseDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	levels := []*entities.StockLevel{
		{
			SKU:       "FLR-OAK-5",
			Quantity:  decimal.NewFromInt(2300),
			Pallets:   2,
			Layers:    3,
			UpdatedAt: baseDate,
		},
		{
			SKU:       "FLR-MPL-3",
			Quantity:  decimal.NewFromInt(500),
			Pallets:   1,
			Layers:    0,
			UpdatedAt: baseDate,
		},
		{
			SKU:       "TRM-QTR-RND",
			Quantity:  decimal.NewFromInt(500),
			Pallets:   0,
			Layers:    5,
			UpdatedAt: baseDate,
		},
		{
			SKU:       "ADH-TROWEL",
			Quantity:  decimal.NewFromInt(40),
			UpdatedAt: baseDate,
		},
		{
			SKU:       "UND-FOAM-RL",
			Quantity:  decimal.NewFromInt(12),
			UpdatedAt: baseDate,
		},
	}

	for _, level := range levels {
		err := stockRepo.Save(level)
		if err != nil {
			panic(err)
		}
	}

	return variantRepo, stockRepo
}

// BuildSimpleTestData creates a minimal catalog for basic tests
func BuildSimpleTestData() (*memory.VariantRepository, *memory.StockRepository) {
	variantRepo := memory.NewVariantRepository()
	stockRepo := memory.NewStockRepository()

	variants := []*entities.Variant{
		{
			SKU:             "FLR-OAK-5",
			Description:     "Oak Plank 5in",
			Unit:            entities.UnitSquareFeet,
			FeetPerLayer:    decimal.NewFromInt(100),
			LayersPerPallet: 10,
			UnitPrice:       decimal.NewFromFloat(4.25),
		},
		{
			SKU:         "ADH-TROWEL",
			Description: "Adhesive Trowel",
			Unit:        entities.UnitEach,
			UnitPrice:   decimal.NewFromFloat(18.50),
		},
	}

	for _, variant := range variants {
		err := variantRepo.Save(variant)
		if err != nil {
			panic(err)
		}
	}

	level := &entities.StockLevel{
		SKU:      "FLR-OAK-5",
		Quantity: decimal.NewFromInt(1000),
		Pallets:  1,
		Layers:   0,
	}

	err := stockRepo.Save(level)
	if err != nil {
		panic(err)
	}

	return variantRepo, stockRepo
}
