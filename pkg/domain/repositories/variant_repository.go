package repositories

import "github.com/ledgewood/inventory/pkg/domain/entities"

// VariantRepository provides access to the product variant catalog
type VariantRepository interface {
	GetBySKU(sku entities.SKU) (*entities.Variant, error)
	GetAll() ([]*entities.Variant, error)
	GetByManufacturer(manufacturerCode string) ([]*entities.Variant, error)
	LoadVariants(variants []*entities.Variant) error
	Save(variant *entities.Variant) error
}
