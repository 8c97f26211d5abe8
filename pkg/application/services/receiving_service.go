package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
)

// ReceivingService handles the flows that add stock back: receiving
// purchase orders from manufacturers and restocking customer returns
type ReceivingService struct {
	poRepo     repositories.PurchaseOrderRepository
	returnRepo repositories.ReturnRepository
	stock      *StockService
	eventStore events.EventStore
}

// NewReceivingService creates a receiving service. The event store may be
// nil.
func NewReceivingService(
	poRepo repositories.PurchaseOrderRepository,
	returnRepo repositories.ReturnRepository,
	stock *StockService,
	eventStore events.EventStore,
) *ReceivingService {
	return &ReceivingService{
		poRepo:     poRepo,
		returnRepo: returnRepo,
		stock:      stock,
		eventStore: eventStore,
	}
}

// ReceivePurchaseOrder adds each line of an open purchase order to stock
// and marks the order received
func (s *ReceivingService) ReceivePurchaseOrder(ctx context.Context, number string) error {
	po, err := s.poRepo.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("failed to load purchase order %s: %w", number, err)
	}
	if po.Status != entities.PurchaseOpen {
		return fmt.Errorf("purchase order %s is %s; only open orders can be received", number, po.Status)
	}

	for _, line := range po.Lines {
		opts := ApplyOptions{Reason: entities.ReasonPurchaseReceived, Reference: po.Number}
		if _, err := s.stock.ApplyChange(ctx, line.StockDelta(), opts); err != nil {
			return fmt.Errorf("failed to receive stock for %s: %w", line.SKU, err)
		}
	}

	po.Status = entities.PurchaseReceived
	po.ReceivedAt = time.Now()
	if err := s.poRepo.Save(po); err != nil {
		return fmt.Errorf("failed to save purchase order %s: %w", number, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(po.Number, events.NewPurchaseReceivedEvent(po)); err != nil {
			return fmt.Errorf("failed to publish purchase received event: %w", err)
		}
	}
	return nil
}

// RestockReturn adds the restockable lines of an open return back to
// stock and marks the return restocked. Lines not in sellable condition
// stay off the shelf.
func (s *ReceivingService) RestockReturn(ctx context.Context, number string) error {
	ret, err := s.returnRepo.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("failed to load return %s: %w", number, err)
	}
	if ret.Status != entities.ReturnOpen {
		return fmt.Errorf("return %s is %s; only open returns can be restocked", number, ret.Status)
	}

	for _, line := range ret.Lines {
		if !line.Restock {
			continue
		}
		opts := ApplyOptions{Reason: entities.ReasonReturnRestocked, Reference: ret.Number}
		if _, err := s.stock.ApplyChange(ctx, line.StockDelta(), opts); err != nil {
			return fmt.Errorf("failed to restock %s: %w", line.SKU, err)
		}
	}

	ret.Status = entities.ReturnRestocked
	if err := s.returnRepo.Save(ret); err != nil {
		return fmt.Errorf("failed to save return %s: %w", number, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(ret.Number, events.NewReturnRestockedEvent(ret)); err != nil {
			return fmt.Errorf("failed to publish return restocked event: %w", err)
		}
	}
	return nil
}
