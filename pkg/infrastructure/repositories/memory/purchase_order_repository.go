package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
)

// PurchaseOrderRepository provides in-memory storage for purchase orders
type PurchaseOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*entities.PurchaseOrder
}

// NewPurchaseOrderRepository creates a new in-memory purchase order repository
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		orders: make(map[string]*entities.PurchaseOrder),
	}
}

// Verify interface compliance
var _ repositories.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// GetByNumber retrieves a purchase order by its number
func (r *PurchaseOrderRepository) GetByNumber(number string) (*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[number]
	if !exists {
		return nil, fmt.Errorf("purchase order %s: %w", number, entities.ErrNotFound)
	}
	return clonePurchaseOrder(order), nil
}

// GetAll returns all purchase orders sorted by number
func (r *PurchaseOrderRepository) GetAll() ([]*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, clonePurchaseOrder(order))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// GetOpen returns purchase orders that have not yet been received or canceled, sorted by number
func (r *PurchaseOrderRepository) GetOpen() ([]*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.PurchaseOrder, 0)
	for _, order := range r.orders {
		if order.Status == entities.PurchaseOpen {
			result = append(result, clonePurchaseOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// Save stores a purchase order, replacing any existing order with the same number
func (r *PurchaseOrderRepository) Save(order *entities.PurchaseOrder) error {
	if order.Number == "" {
		return fmt.Errorf("purchase order number cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.Number] = clonePurchaseOrder(order)
	return nil
}

func clonePurchaseOrder(order *entities.PurchaseOrder) *entities.PurchaseOrder {
	clone := *order
	clone.Lines = make([]entities.PurchaseOrderLine, len(order.Lines))
	copy(clone.Lines, order.Lines)
	return &clone
}
