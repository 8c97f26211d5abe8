package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
	"github.com/ledgewood/inventory/pkg/domain/services/packing"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
)

// OrderService owns the customer order lifecycle: line normalization,
// placing, editing, and canceling, with the matching stock commits.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	variantRepo repositories.VariantRepository
	stock       *StockService
	eventStore  events.EventStore
	calc        *packing.Calculator
	defaults    entities.PackingSpec
}

// NewOrderService creates an order service. The event store may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	variantRepo repositories.VariantRepository,
	stock *StockService,
	eventStore events.EventStore,
	defaults entities.PackingSpec,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		stock:       stock,
		eventStore:  eventStore,
		calc:        packing.NewCalculator(),
		defaults:    defaults,
	}
}

// NormalizeLine prepares an entered line for commit. Layered lines are
// rounded up to a whole layer and get their pallet/layer pair filled in;
// when the pallet/layer pair is what the user entered, the quantity is
// recomputed from it instead. Simple units pass through with a zero
// breakdown. Lines for variants missing from the catalog normalize
// against their own unit label and the configured defaults.
func (s *OrderService) NormalizeLine(line entities.OrderLine) (entities.OrderLine, error) {
	layered := line.Unit.IsLayered()
	spec := s.defaults

	variant, err := s.variantRepo.GetBySKU(line.SKU)
	switch {
	case err == nil:
		layered = variant.IsLayered()
		if line.Unit == "" {
			line.Unit = variant.Unit
		}
		if line.Description == "" {
			line.Description = variant.Description
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = variant.UnitPrice
		}
		if layered {
			spec, err = variant.EffectivePackingSpec(s.defaults)
			if err != nil {
				return line, fmt.Errorf("failed to resolve packing spec for %s: %w", line.SKU, err)
			}
		}
	case errors.Is(err, entities.ErrNotFound):
	default:
		return line, fmt.Errorf("failed to resolve variant %s: %w", line.SKU, err)
	}

	if !layered {
		line.Pallets = 0
		line.Layers = 0
		line.PalletsAuthoritative = false
		return line, nil
	}

	if line.PalletsAuthoritative {
		quantity, err := s.calc.BreakdownToQuantity(entities.PalletBreakdown{Pallets: line.Pallets, Layers: line.Layers}, spec)
		if err != nil {
			return line, fmt.Errorf("failed to convert breakdown for %s: %w", line.SKU, err)
		}
		line.Quantity = quantity
		return line, nil
	}

	rounded, err := s.calc.RoundQuantityUp(line.Quantity, spec.FeetPerLayer)
	if err != nil {
		return line, fmt.Errorf("failed to round quantity for %s: %w", line.SKU, err)
	}
	breakdown, err := s.calc.QuantityToBreakdown(rounded, spec)
	if err != nil {
		return line, fmt.Errorf("failed to convert quantity for %s: %w", line.SKU, err)
	}
	line.Quantity = rounded
	line.Pallets = breakdown.Pallets
	line.Layers = breakdown.Layers
	return line, nil
}

// PlaceOrder normalizes the order's lines, commits the per-variant stock
// removals, and persists the order as placed. Transient lines stay on the
// order but never move stock.
func (s *OrderService) PlaceOrder(ctx context.Context, order *entities.CustomerOrder, clampNegative bool) error {
	if order.Status != entities.OrderDraft {
		return fmt.Errorf("order %s is %s; only draft orders can be placed", order.Number, order.Status)
	}

	for i, line := range order.Lines {
		normalized, err := s.NormalizeLine(line)
		if err != nil {
			return fmt.Errorf("failed to normalize line for %s: %w", line.SKU, err)
		}
		order.Lines[i] = normalized
	}

	for _, line := range order.Lines {
		transient, err := s.isTransient(line.SKU)
		if err != nil {
			return err
		}
		if transient {
			continue
		}
		opts := ApplyOptions{ClampNegative: clampNegative, Reason: entities.ReasonOrderPlaced, Reference: order.Number}
		if _, err := s.stock.ApplyChange(ctx, line.StockDelta(), opts); err != nil {
			return fmt.Errorf("failed to commit stock for %s: %w", line.SKU, err)
		}
	}

	order.Status = entities.OrderPlaced
	if err := s.orderRepo.Save(order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.Number, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(order.Number, events.NewOrderPlacedEvent(order)); err != nil {
			return fmt.Errorf("failed to publish order placed event: %w", err)
		}
	}
	return nil
}

// UpdateOrder replaces a placed order's lines and commits the net stock
// difference: old lines hand their stock back, new lines take theirs out
func (s *OrderService) UpdateOrder(ctx context.Context, number string, newLines []entities.OrderLine, clampNegative bool) error {
	order, err := s.orderRepo.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", number, err)
	}
	if order.Status != entities.OrderPlaced {
		return fmt.Errorf("order %s is %s; only placed orders can be edited", number, order.Status)
	}

	normalized := make([]entities.OrderLine, len(newLines))
	for i, line := range newLines {
		n, err := s.NormalizeLine(line)
		if err != nil {
			return fmt.Errorf("failed to normalize line for %s: %w", line.SKU, err)
		}
		normalized[i] = n
	}

	changes, _ := aggregateLineDiff(order.Lines, normalized)
	for _, change := range changes {
		if change.IsZero() {
			continue
		}
		transient, err := s.isTransient(change.SKU)
		if err != nil {
			return err
		}
		if transient {
			continue
		}
		opts := ApplyOptions{ClampNegative: clampNegative, Reason: entities.ReasonOrderEdited, Reference: number}
		if _, err := s.stock.ApplyChange(ctx, change, opts); err != nil {
			return fmt.Errorf("failed to commit stock for %s: %w", change.SKU, err)
		}
	}

	oldLines := order.Lines
	order.Lines = normalized
	if err := s.orderRepo.Save(order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", number, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(number, events.NewOrderEditedEvent(number, oldLines, normalized)); err != nil {
			return fmt.Errorf("failed to publish order edited event: %w", err)
		}
	}
	return nil
}

// CancelOrder restores the stock a placed order consumed and marks the
// order canceled
func (s *OrderService) CancelOrder(ctx context.Context, number, reason string) error {
	order, err := s.orderRepo.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", number, err)
	}
	if order.Status != entities.OrderPlaced {
		return fmt.Errorf("order %s is %s; only placed orders can be canceled", number, order.Status)
	}

	for _, line := range order.Lines {
		transient, err := s.isTransient(line.SKU)
		if err != nil {
			return err
		}
		if transient {
			continue
		}
		opts := ApplyOptions{Reason: entities.ReasonOrderCanceled, Reference: number}
		if _, err := s.stock.ApplyChange(ctx, line.StockDelta().Negate(), opts); err != nil {
			return fmt.Errorf("failed to restore stock for %s: %w", line.SKU, err)
		}
	}

	order.Status = entities.OrderCanceled
	if err := s.orderRepo.Save(order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", number, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(number, events.NewOrderCanceledEvent(order, reason)); err != nil {
			return fmt.Errorf("failed to publish order canceled event: %w", err)
		}
	}
	return nil
}

// isTransient reports whether a SKU has no committed catalog entry
func (s *OrderService) isTransient(sku entities.SKU) (bool, error) {
	variant, err := s.variantRepo.GetBySKU(sku)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to resolve variant %s: %w", sku, err)
	}
	return variant.Transient, nil
}
