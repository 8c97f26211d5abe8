package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
)

// StockRepository provides in-memory storage for stock levels and their movement history
type StockRepository struct {
	mu        sync.RWMutex
	levels    map[entities.SKU]entities.StockLevel
	movements []entities.StockMovement
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		levels:    make(map[entities.SKU]entities.StockLevel),
		movements: make([]entities.StockMovement, 0),
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// GetBySKU retrieves the stock level for a SKU
func (r *StockRepository) GetBySKU(sku entities.SKU) (*entities.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	level, exists := r.levels[sku]
	if !exists {
		return nil, fmt.Errorf("stock level %s: %w", sku, entities.ErrNotFound)
	}
	return &level, nil
}

// GetAll returns all stock levels sorted by SKU
func (r *StockRepository) GetAll() ([]*entities.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.StockLevel, 0, len(r.levels))
	for sku := range r.levels {
		level := r.levels[sku]
		result = append(result, &level)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SKU < result[j].SKU
	})
	return result, nil
}

// LoadStockLevels loads a batch of stock levels
func (r *StockRepository) LoadStockLevels(levels []*entities.StockLevel) error {
	for _, level := range levels {
		if err := r.Save(level); err != nil {
			return fmt.Errorf("failed to save stock level %s: %w", level.SKU, err)
		}
	}
	return nil
}

// Save stores a stock level, replacing any existing level for the same SKU
func (r *StockRepository) Save(level *entities.StockLevel) error {
	if level.SKU == "" {
		return fmt.Errorf("stock level SKU cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.levels[level.SKU] = *level
	return nil
}

// RecordMovement appends a movement to the history
func (r *StockRepository) RecordMovement(movement *entities.StockMovement) error {
	if movement.SKU == "" {
		return fmt.Errorf("movement SKU cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.movements = append(r.movements, *movement)
	return nil
}

// GetMovements returns the recorded movements for a SKU in the order they were recorded
func (r *StockRepository) GetMovements(sku entities.SKU) ([]*entities.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.StockMovement, 0)
	for i := range r.movements {
		if r.movements[i].SKU == sku {
			movement := r.movements[i]
			result = append(result, &movement)
		}
	}
	return result, nil
}
