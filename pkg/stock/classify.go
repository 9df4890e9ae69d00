// Package stock classifies inventory snapshots into critical stock.
package stock

import (
	"cmp"
	"math"
	"slices"

	domain "github.com/donaldgifford/mi-caja/pkg/types"
)

const (
	// CriticalThreshold is the quantity at or below which an item is critical.
	CriticalThreshold = 5.0

	// DefaultUnit is used for records without a unit label.
	DefaultUnit = "unidades"
)

// Classify returns the records whose coerced quantity is at or below
// CriticalThreshold, most depleted first. Ties keep their input order.
// Malformed records are coerced, never rejected.
func Classify(records []domain.StockRecord) []domain.CriticalItem {
	items := make([]domain.CriticalItem, 0, len(records))

	for i := range records {
		qty := Quantity(records[i].AvailableQuantity)
		if qty > CriticalThreshold {
			continue
		}

		unit := records[i].Unit
		if unit == "" {
			unit = DefaultUnit
		}

		items = append(items, domain.CriticalItem{
			ID:       records[i].ID,
			Name:     records[i].Name,
			Quantity: qty,
			Unit:     unit,
		})
	}

	slices.SortStableFunc(items, func(a, b domain.CriticalItem) int {
		return cmp.Compare(a.Quantity, b.Quantity)
	})

	return items
}

// Quantity coerces a raw quantity to a non-negative number.
// Missing, NaN, infinite and negative values all become zero.
func Quantity(q *float64) float64 {
	if q == nil {
		return 0
	}
	v := *q
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
