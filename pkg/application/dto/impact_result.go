package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
)

// ImpactResult contains the complete output of a stock projection run
type ImpactResult struct {
	GeneratedAt time.Time
	Projections []StockProjection
	Transient   []TransientLine
	Warnings    []string
}

// StockProjection describes the projected effect of a change set on one
// variant's stock. Current is the snapshot the projection started from;
// Projected is what committing the change would leave on hand.
type StockProjection struct {
	SKU         entities.SKU
	Description string
	Unit        entities.UnitOfMeasure
	Current     entities.StockLevel
	Change      entities.StockChange
	Projected   entities.StockLevel
	Oversold    bool
}

// TransientLine records a change for a variant that is not part of the
// saved catalog. It is reported for visibility but never projected.
type TransientLine struct {
	SKU      entities.SKU
	Unit     entities.UnitOfMeasure
	Quantity decimal.Decimal
	Note     string
}

// ProjectionFor returns the projection for a SKU, if the run produced one
func (r *ImpactResult) ProjectionFor(sku entities.SKU) (*StockProjection, bool) {
	for i := range r.Projections {
		if r.Projections[i].SKU == sku {
			return &r.Projections[i], true
		}
	}
	return nil, false
}

// OversoldSKUs lists every variant the projection leaves below zero
func (r *ImpactResult) OversoldSKUs() []entities.SKU {
	skus := make([]entities.SKU, 0)
	for _, p := range r.Projections {
		if p.Oversold {
			skus = append(skus, p.SKU)
		}
	}
	return skus
}
