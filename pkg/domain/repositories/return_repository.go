package repositories

import "github.com/ledgewood/inventory/pkg/domain/entities"

// ReturnRepository provides access to customer returns
type ReturnRepository interface {
	GetByNumber(number string) (*entities.Return, error)
	GetAll() ([]*entities.Return, error)
	GetByOrder(orderNumber string) ([]*entities.Return, error)
	Save(ret *entities.Return) error
}
