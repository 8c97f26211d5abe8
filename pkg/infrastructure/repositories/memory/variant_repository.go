package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
)

// VariantRepository provides in-memory catalog storage
type VariantRepository struct {
	mu       sync.RWMutex
	variants map[entities.SKU]entities.Variant
}

// NewVariantRepository creates a new in-memory variant repository
func NewVariantRepository() *VariantRepository {
	return &VariantRepository{
		variants: make(map[entities.SKU]entities.Variant),
	}
}

// Verify interface compliance
var _ repositories.VariantRepository = (*VariantRepository)(nil)

// GetBySKU retrieves a variant by its SKU
func (r *VariantRepository) GetBySKU(sku entities.SKU) (*entities.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variant, exists := r.variants[sku]
	if !exists {
		return nil, fmt.Errorf("variant %s: %w", sku, entities.ErrNotFound)
	}
	return &variant, nil
}

// GetAll returns all variants sorted by SKU
func (r *VariantRepository) GetAll() ([]*entities.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Variant, 0, len(r.variants))
	for sku := range r.variants {
		variant := r.variants[sku]
		result = append(result, &variant)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SKU < result[j].SKU
	})
	return result, nil
}

// GetByManufacturer returns all variants carrying the given manufacturer code, sorted by SKU
func (r *VariantRepository) GetByManufacturer(code string) ([]*entities.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Variant, 0)
	for sku := range r.variants {
		if r.variants[sku].ManufacturerCode == code {
			variant := r.variants[sku]
			result = append(result, &variant)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SKU < result[j].SKU
	})
	return result, nil
}

// LoadVariants loads a batch of variants, rejecting duplicate SKUs within the batch
func (r *VariantRepository) LoadVariants(variants []*entities.Variant) error {
	seen := make(map[entities.SKU]bool)
	var duplicates []string
	for _, variant := range variants {
		if seen[variant.SKU] {
			duplicates = append(duplicates, string(variant.SKU))
		}
		seen[variant.SKU] = true
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate SKUs found: %s", strings.Join(duplicates, ", "))
	}

	for _, variant := range variants {
		if err := r.Save(variant); err != nil {
			return fmt.Errorf("failed to save variant %s: %w", variant.SKU, err)
		}
	}
	return nil
}

// Save stores a variant, replacing any existing variant with the same SKU
func (r *VariantRepository) Save(variant *entities.Variant) error {
	if variant.SKU == "" {
		return fmt.Errorf("variant SKU cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.variants[variant.SKU] = *variant
	return nil
}
