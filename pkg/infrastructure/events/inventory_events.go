package events

import (
	"github.com/ledgewood/inventory/pkg/domain/entities"
)

const (
	StockMovementRecordedEvent = "stock.movement.recorded"
	StockOversoldEvent         = "stock.oversold"

	OrderPlacedEvent   = "order.placed"
	OrderEditedEvent   = "order.edited"
	OrderCanceledEvent = "order.canceled"

	PurchaseReceivedEvent = "purchase.received"
	ReturnRestockedEvent  = "return.restocked"
)

type StockMovementRecorded struct {
	Movement entities.StockMovement `json:"movement"`
}

type StockOversold struct {
	Level entities.StockLevel `json:"level"`
}

type OrderPlaced struct {
	Order entities.CustomerOrder `json:"order"`
}

type OrderEdited struct {
	OrderNumber string               `json:"order_number"`
	OldLines    []entities.OrderLine `json:"old_lines"`
	NewLines    []entities.OrderLine `json:"new_lines"`
}

type OrderCanceled struct {
	Order  entities.CustomerOrder `json:"order"`
	Reason string                 `json:"reason"`
}

type PurchaseReceived struct {
	PurchaseOrder entities.PurchaseOrder `json:"purchase_order"`
}

type ReturnRestocked struct {
	Return entities.Return `json:"return"`
}

func NewStockMovementRecordedEvent(movement *entities.StockMovement) Event {
	return NewEvent(StockMovementRecordedEvent, string(movement.SKU), StockMovementRecorded{Movement: *movement})
}

func NewStockOversoldEvent(level entities.StockLevel) Event {
	return NewEvent(StockOversoldEvent, string(level.SKU), StockOversold{Level: level})
}

func NewOrderPlacedEvent(order *entities.CustomerOrder) Event {
	return NewEvent(OrderPlacedEvent, order.Number, OrderPlaced{Order: *order})
}

func NewOrderEditedEvent(orderNumber string, oldLines, newLines []entities.OrderLine) Event {
	return NewEvent(OrderEditedEvent, orderNumber, OrderEdited{
		OrderNumber: orderNumber,
		OldLines:    oldLines,
		NewLines:    newLines,
	})
}

func NewOrderCanceledEvent(order *entities.CustomerOrder, reason string) Event {
	return NewEvent(OrderCanceledEvent, order.Number, OrderCanceled{Order: *order, Reason: reason})
}

func NewPurchaseReceivedEvent(po *entities.PurchaseOrder) Event {
	return NewEvent(PurchaseReceivedEvent, po.Number, PurchaseReceived{PurchaseOrder: *po})
}

func NewReturnRestockedEvent(ret *entities.Return) Event {
	return NewEvent(ReturnRestockedEvent, ret.Number, ReturnRestocked{Return: *ret})
}
