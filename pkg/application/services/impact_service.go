package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgewood/inventory/pkg/application/dto"
	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/repositories"
	"github.com/ledgewood/inventory/pkg/domain/services/packing"
)

// ImpactService projects the stock effect of pending changes without
// touching stored levels. Callers fetch the snapshot, project, and decide
// what to commit.
type ImpactService struct {
	variantRepo repositories.VariantRepository
	stockRepo   repositories.StockRepository
	calc        *packing.Calculator
	defaults    entities.PackingSpec
}

// NewImpactService creates an impact service over the given repositories.
// The defaults are substituted for variants that leave their packing
// constants unset.
func NewImpactService(
	variantRepo repositories.VariantRepository,
	stockRepo repositories.StockRepository,
	defaults entities.PackingSpec,
) *ImpactService {
	return &ImpactService{
		variantRepo: variantRepo,
		stockRepo:   stockRepo,
		calc:        packing.NewCalculator(),
		defaults:    defaults,
	}
}

// ProjectOrderDiff projects the net stock effect of editing an order from
// one set of lines to another. Placing a new order passes empty before
// lines; canceling passes empty after lines. Lines for the same variant
// are netted together before projection, so projecting two edits
// sequentially equals projecting their combined diff.
func (s *ImpactService) ProjectOrderDiff(ctx context.Context, before, after []entities.OrderLine) (*dto.ImpactResult, error) {
	changes, units := aggregateLineDiff(before, after)
	return s.project(changes, units)
}

// ProjectChanges projects a set of direct stock changes, netting rows for
// the same variant together
func (s *ImpactService) ProjectChanges(ctx context.Context, changes []entities.StockChange) (*dto.ImpactResult, error) {
	merged := make(map[entities.SKU]entities.StockChange)
	order := make([]entities.SKU, 0, len(changes))
	for _, change := range changes {
		existing, exists := merged[change.SKU]
		if !exists {
			merged[change.SKU] = change
			order = append(order, change.SKU)
			continue
		}
		merged[change.SKU] = existing.Add(change)
	}

	netted := make([]entities.StockChange, 0, len(order))
	for _, sku := range order {
		netted = append(netted, merged[sku])
	}
	return s.project(netted, nil)
}

// project runs the per-variant stock arithmetic for an already-netted
// change set
func (s *ImpactService) project(changes []entities.StockChange, unitHints map[entities.SKU]entities.UnitOfMeasure) (*dto.ImpactResult, error) {
	result := &dto.ImpactResult{
		GeneratedAt: time.Now(),
		Projections: make([]dto.StockProjection, 0, len(changes)),
		Transient:   make([]dto.TransientLine, 0),
		Warnings:    make([]string, 0),
	}

	for _, change := range changes {
		if change.IsZero() {
			continue
		}

		variant, err := s.variantRepo.GetBySKU(change.SKU)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				result.Transient = append(result.Transient, dto.TransientLine{
					SKU:      change.SKU,
					Unit:     unitHints[change.SKU],
					Quantity: change.Quantity,
					Note:     "variant not in catalog",
				})
				continue
			}
			return nil, fmt.Errorf("failed to resolve variant %s: %w", change.SKU, err)
		}
		if variant.Transient {
			result.Transient = append(result.Transient, dto.TransientLine{
				SKU:      change.SKU,
				Unit:     variant.Unit,
				Quantity: change.Quantity,
				Note:     "variant not yet saved to catalog",
			})
			continue
		}

		spec := entities.PackingSpec{}
		if variant.IsLayered() {
			spec, err = variant.EffectivePackingSpec(s.defaults)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve packing spec for %s: %w", change.SKU, err)
			}
		}

		current := entities.StockLevel{SKU: change.SKU}
		level, err := s.stockRepo.GetBySKU(change.SKU)
		switch {
		case err == nil:
			current = *level
		case errors.Is(err, entities.ErrNotFound):
			result.Warnings = append(result.Warnings, fmt.Sprintf("No stock record for %s; projecting from zero", change.SKU))
		default:
			return nil, fmt.Errorf("failed to load stock for %s: %w", change.SKU, err)
		}

		projected, err := s.calc.ApplyStockChange(current, change, spec, variant.IsLayered(), change.PalletsAuthoritative)
		if err != nil {
			return nil, fmt.Errorf("failed to project stock for %s: %w", change.SKU, err)
		}

		result.Projections = append(result.Projections, dto.StockProjection{
			SKU:         change.SKU,
			Description: variant.Description,
			Unit:        variant.Unit,
			Current:     current,
			Change:      change,
			Projected:   projected,
			Oversold:    projected.Quantity.IsNegative(),
		})
	}

	return result, nil
}

// aggregateLineDiff nets two line sets into per-variant stock changes.
// Before lines hand their stock back; after lines take theirs out. The
// returned changes keep first-seen order, and the unit map records each
// variant's unit label for transient reporting.
func aggregateLineDiff(before, after []entities.OrderLine) ([]entities.StockChange, map[entities.SKU]entities.UnitOfMeasure) {
	merged := make(map[entities.SKU]entities.StockChange)
	order := make([]entities.SKU, 0, len(before)+len(after))
	units := make(map[entities.SKU]entities.UnitOfMeasure)

	accumulate := func(delta entities.StockChange, unit entities.UnitOfMeasure) {
		existing, exists := merged[delta.SKU]
		if !exists {
			merged[delta.SKU] = delta
			order = append(order, delta.SKU)
			units[delta.SKU] = unit
			return
		}
		merged[delta.SKU] = existing.Add(delta)
	}

	for _, line := range before {
		accumulate(line.StockDelta().Negate(), line.Unit)
	}
	for _, line := range after {
		accumulate(line.StockDelta(), line.Unit)
	}

	changes := make([]entities.StockChange, 0, len(order))
	for _, sku := range order {
		changes = append(changes, merged[sku])
	}
	return changes, units
}
