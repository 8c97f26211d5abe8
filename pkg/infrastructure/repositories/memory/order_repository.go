package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
)

// OrderRepository provides in-memory storage for customer orders
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*entities.CustomerOrder
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*entities.CustomerOrder),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// GetByNumber retrieves an order by its order number
func (r *OrderRepository) GetByNumber(number string) (*entities.CustomerOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[number]
	if !exists {
		return nil, fmt.Errorf("order %s: %w", number, entities.ErrNotFound)
	}
	return cloneOrder(order), nil
}

// GetAll returns all orders sorted by order number
func (r *OrderRepository) GetAll() ([]*entities.CustomerOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.CustomerOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// GetByCustomer returns all orders for a customer code sorted by order number
func (r *OrderRepository) GetByCustomer(code string) ([]*entities.CustomerOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.CustomerOrder, 0)
	for _, order := range r.orders {
		if order.CustomerCode == code {
			result = append(result, cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// Save stores an order, replacing any existing order with the same number
func (r *OrderRepository) Save(order *entities.CustomerOrder) error {
	if order.Number == "" {
		return fmt.Errorf("order number cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.Number] = cloneOrder(order)
	return nil
}

// cloneOrder copies an order so callers cannot mutate stored state through its line slice
func cloneOrder(order *entities.CustomerOrder) *entities.CustomerOrder {
	clone := *order
	clone.Lines = make([]entities.OrderLine, len(order.Lines))
	copy(clone.Lines, order.Lines)
	return &clone
}
