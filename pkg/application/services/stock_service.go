package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
	"github.com/ledgewood/inventory/pkg/domain/services/packing"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
)

// ApplyOptions control how a stock change is committed
type ApplyOptions struct {
	// ClampNegative persists a floor of zero when the projected quantity
	// goes negative. The movement record still carries the real signed
	// change; only the stored level is clamped.
	ClampNegative bool
	Reason        entities.MovementReason
	Reference     string
}

// StockService applies signed changes to stored stock levels and records
// the movement trail
type StockService struct {
	variantRepo repositories.VariantRepository
	stockRepo   repositories.StockRepository
	eventStore  events.EventStore
	calc        *packing.Calculator
	defaults    entities.PackingSpec
}

// NewStockService creates a stock service. The event store may be nil
// when no one listens for movements.
func NewStockService(
	variantRepo repositories.VariantRepository,
	stockRepo repositories.StockRepository,
	eventStore events.EventStore,
	defaults entities.PackingSpec,
) *StockService {
	return &StockService{
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		eventStore:  eventStore,
		calc:        packing.NewCalculator(),
		defaults:    defaults,
	}
}

// ApplyChange applies one signed change to a variant's stored stock
// level, writes a movement record, and publishes the matching events.
// The committed level is returned.
func (s *StockService) ApplyChange(ctx context.Context, change entities.StockChange, opts ApplyOptions) (*entities.StockLevel, error) {
	variant, err := s.variantRepo.GetBySKU(change.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve variant %s: %w", change.SKU, err)
	}
	if variant.Transient {
		return nil, fmt.Errorf("variant %s is transient and carries no stock", change.SKU)
	}

	spec := entities.PackingSpec{}
	if variant.IsLayered() {
		spec, err = variant.EffectivePackingSpec(s.defaults)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve packing spec for %s: %w", change.SKU, err)
		}
	}

	// A variant with no stock row yet starts from zero
	current := entities.StockLevel{SKU: change.SKU}
	level, err := s.stockRepo.GetBySKU(change.SKU)
	switch {
	case err == nil:
		current = *level
	case errors.Is(err, entities.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load stock for %s: %w", change.SKU, err)
	}

	projected, err := s.calc.ApplyStockChange(current, change, spec, variant.IsLayered(), change.PalletsAuthoritative)
	if err != nil {
		return nil, fmt.Errorf("failed to apply change for %s: %w", change.SKU, err)
	}

	committed := projected
	clamped := false
	if opts.ClampNegative && projected.Quantity.IsNegative() {
		committed.Quantity = decimal.Zero
		committed.Pallets = 0
		committed.Layers = 0
		clamped = true
	}
	committed.UpdatedAt = time.Now()

	if err := s.stockRepo.Save(&committed); err != nil {
		return nil, fmt.Errorf("failed to save stock for %s: %w", change.SKU, err)
	}

	movement := entities.NewStockMovement(change.SKU, opts.Reason, opts.Reference, change, committed, clamped)
	if err := s.stockRepo.RecordMovement(movement); err != nil {
		return nil, fmt.Errorf("failed to record movement for %s: %w", change.SKU, err)
	}

	if s.eventStore != nil {
		if err := s.eventStore.AppendEvent(string(change.SKU), events.NewStockMovementRecordedEvent(movement)); err != nil {
			return nil, fmt.Errorf("failed to publish movement event for %s: %w", change.SKU, err)
		}
		if committed.IsOversold() {
			if err := s.eventStore.AppendEvent(string(change.SKU), events.NewStockOversoldEvent(committed)); err != nil {
				return nil, fmt.Errorf("failed to publish oversold event for %s: %w", change.SKU, err)
			}
		}
	}

	return &committed, nil
}
