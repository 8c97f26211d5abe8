package repositories

import "github.com/ledgewood/inventory/pkg/domain/entities"

// OrderRepository provides access to customer orders
type OrderRepository interface {
	GetByNumber(number string) (*entities.CustomerOrder, error)
	GetAll() ([]*entities.CustomerOrder, error)
	GetByCustomer(customerCode string) ([]*entities.CustomerOrder, error)
	Save(order *entities.CustomerOrder) error
}
