package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
)

// ReturnRepository provides in-memory storage for customer returns
type ReturnRepository struct {
	mu      sync.RWMutex
	returns map[string]*entities.Return
}

// NewReturnRepository creates a new in-memory return repository
func NewReturnRepository() *ReturnRepository {
	return &ReturnRepository{
		returns: make(map[string]*entities.Return),
	}
}

// Verify interface compliance
var _ repositories.ReturnRepository = (*ReturnRepository)(nil)

// GetByNumber retrieves a return by its number
func (r *ReturnRepository) GetByNumber(number string) (*entities.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret, exists := r.returns[number]
	if !exists {
		return nil, fmt.Errorf("return %s: %w", number, entities.ErrNotFound)
	}
	return cloneReturn(ret), nil
}

// GetAll returns all returns sorted by number
func (r *ReturnRepository) GetAll() ([]*entities.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Return, 0, len(r.returns))
	for _, ret := range r.returns {
		result = append(result, cloneReturn(ret))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// GetByOrder returns all returns raised against an order number, sorted by return number
func (r *ReturnRepository) GetByOrder(orderNumber string) ([]*entities.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Return, 0)
	for _, ret := range r.returns {
		if ret.OrderNumber == orderNumber {
			result = append(result, cloneReturn(ret))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

// Save stores a return, replacing any existing return with the same number
func (r *ReturnRepository) Save(ret *entities.Return) error {
	if ret.Number == "" {
		return fmt.Errorf("return number cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.returns[ret.Number] = cloneReturn(ret)
	return nil
}

func cloneReturn(ret *entities.Return) *entities.Return {
	clone := *ret
	clone.Lines = make([]entities.ReturnLine, len(ret.Lines))
	copy(clone.Lines, ret.Lines)
	return &clone
}
