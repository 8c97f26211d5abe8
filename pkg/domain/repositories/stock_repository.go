package repositories

import "github.com/ledgewood/inventory/pkg/domain/entities"

// StockRepository provides access to on-hand stock levels and the
// movement audit log
type StockRepository interface {
	GetBySKU(sku entities.SKU) (*entities.StockLevel, error)
	GetAll() ([]*entities.StockLevel, error)
	LoadStockLevels(levels []*entities.StockLevel) error
	Save(level *entities.StockLevel) error
	RecordMovement(movement *entities.StockMovement) error
	GetMovements(sku entities.SKU) ([]*entities.StockMovement, error)
}
