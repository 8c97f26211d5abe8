package catalog_validator

import (
	"fmt"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/services/packing"
)

// CatalogValidator provides consistency checks over the variant catalog
// and a stock snapshot before projections run against them
type CatalogValidator struct {
	calc *packing.Calculator
}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{calc: packing.NewCalculator()}
}

// StockMismatch describes a stock row whose quantity disagrees with its
// stored pallet/layer breakdown under the variant's effective spec
type StockMismatch struct {
	SKU             entities.SKU
	Quantity        string
	StoredPallets   int64
	StoredLayers    int64
	ExpectedPallets int64
	ExpectedLayers  int64
}

// ValidationResult contains the findings of a catalog validation pass.
// Findings are warnings for the caller to surface, not hard failures.
type ValidationResult struct {
	DuplicateSKUs  []entities.SKU
	InvalidPacking []entities.SKU
	UnknownSKUs    []entities.SKU
	Mismatches     []StockMismatch
	Errors         []string
}

// HasFindings reports whether the validation pass flagged anything
func (r *ValidationResult) HasFindings() bool {
	return len(r.Errors) > 0
}

// ValidateCatalogConsistency runs a full validation pass with a fresh
// validator. Convenience for callers that validate once and move on.
func ValidateCatalogConsistency(variants []*entities.Variant, stocks []*entities.StockLevel, defaults entities.PackingSpec) *ValidationResult {
	return NewCatalogValidator().ValidateCatalog(variants, stocks, defaults)
}

// ValidateCatalog performs consistency checks on variants and their stock
// snapshot: duplicate SKUs, packing constants that stay unusable even
// after default substitution, stock rows for unknown SKUs, and stock rows
// whose quantity and breakdown disagree.
func (v *CatalogValidator) ValidateCatalog(variants []*entities.Variant, stocks []*entities.StockLevel, defaults entities.PackingSpec) *ValidationResult {
	result := &ValidationResult{
		DuplicateSKUs:  make([]entities.SKU, 0),
		InvalidPacking: make([]entities.SKU, 0),
		UnknownSKUs:    make([]entities.SKU, 0),
		Mismatches:     make([]StockMismatch, 0),
		Errors:         make([]string, 0),
	}

	// Index the catalog, flagging duplicate SKUs along the way
	bySKU := make(map[entities.SKU]*entities.Variant, len(variants))
	for _, variant := range variants {
		if _, exists := bySKU[variant.SKU]; exists {
			result.DuplicateSKUs = append(result.DuplicateSKUs, variant.SKU)
			continue
		}
		bySKU[variant.SKU] = variant
	}

	// Check that every layered variant resolves to a usable packing spec
	for _, variant := range variants {
		if !variant.IsLayered() {
			continue
		}
		if _, err := variant.EffectivePackingSpec(defaults); err != nil {
			result.InvalidPacking = append(result.InvalidPacking, variant.SKU)
		}
	}

	// Check every stock row against its variant
	for _, stock := range stocks {
		variant, exists := bySKU[stock.SKU]
		if !exists {
			result.UnknownSKUs = append(result.UnknownSKUs, stock.SKU)
			continue
		}

		if !variant.IsLayered() {
			if stock.Pallets != 0 || stock.Layers != 0 {
				result.Mismatches = append(result.Mismatches, StockMismatch{
					SKU:           stock.SKU,
					Quantity:      stock.Quantity.String(),
					StoredPallets: stock.Pallets,
					StoredLayers:  stock.Layers,
				})
			}
			continue
		}

		spec, err := variant.EffectivePackingSpec(defaults)
		if err != nil {
			// Already reported through InvalidPacking
			continue
		}

		expected, err := v.calc.QuantityToBreakdown(stock.Quantity, spec)
		if err != nil {
			continue
		}
		if expected.Pallets != stock.Pallets || expected.Layers != stock.Layers {
			result.Mismatches = append(result.Mismatches, StockMismatch{
				SKU:             stock.SKU,
				Quantity:        stock.Quantity.String(),
				StoredPallets:   stock.Pallets,
				StoredLayers:    stock.Layers,
				ExpectedPallets: expected.Pallets,
				ExpectedLayers:  expected.Layers,
			})
		}
	}

	// Summarize findings as printable errors
	if len(result.DuplicateSKUs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate SKUs found: %v", result.DuplicateSKUs))
	}
	if len(result.InvalidPacking) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Variants with unusable packing constants: %v", result.InvalidPacking))
	}
	if len(result.UnknownSKUs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Stock rows for unknown SKUs: %v", result.UnknownSKUs))
	}
	for _, m := range result.Mismatches {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Stock for %s: quantity %s implies breakdown (%d, %d) but (%d, %d) is stored",
			m.SKU, m.Quantity, m.ExpectedPallets, m.ExpectedLayers, m.StoredPallets, m.StoredLayers))
	}

	return result
}
