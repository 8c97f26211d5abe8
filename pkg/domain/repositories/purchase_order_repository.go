package repositories

import "github.com/ledgewood/inventory/pkg/domain/entities"

// PurchaseOrderRepository provides access to purchase orders placed with
// manufacturers
type PurchaseOrderRepository interface {
	GetByNumber(number string) (*entities.PurchaseOrder, error)
	GetAll() ([]*entities.PurchaseOrder, error)
	GetOpen() ([]*entities.PurchaseOrder, error)
	Save(po *entities.PurchaseOrder) error
}
