package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/barron/scheduler/pkg/domain/entities"
)

const (
	// EstimatedSetupSavingHours is the average changeover avoided by
	// folding a future order's quantity into the current batch.
	EstimatedSetupSavingHours = 1.5

	// AnticipationShare is the fraction of future same-product demand
	// produced ahead of time when batching pays off.
	AnticipationShare = 0.5
)

// PriorityScore ranks an order for legacy dispatch: due / cluster, lower is
// more urgent. Higher commercial clusters pull the score down.
func PriorityScore(o entities.Order) float64 {
	return o.Due / float64(o.Cluster)
}

// SortByPriority returns the orders sorted by ascending priority score.
// The sort is stable: ties keep their input order.
func SortByPriority(orders []entities.Order) []entities.Order {
	sorted := make([]entities.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PriorityScore(sorted[i]) < PriorityScore(sorted[j])
	})
	return sorted
}

// FutureSameProduct finds orders for the same product due strictly after the
// current order but within the look-ahead horizon. Only legacy
// single-product orders participate in anticipatory batching.
func FutureSameProduct(current entities.Order, all []entities.Order, horizonHours float64) []entities.Order {
	product, _, err := current.LegacyDemand()
	if err != nil {
		return nil
	}

	var future []entities.Order
	for _, o := range all {
		if o.ID == current.ID {
			continue
		}
		oProduct, _, err := o.LegacyDemand()
		if err != nil || oProduct != product {
			continue
		}
		if o.Due > current.Due && o.Due <= current.Due+horizonHours {
			future = append(future, o)
		}
	}
	return future
}

// AnticipatedQuantity decides how much extra to produce now to cover future
// same-product demand. The fixed setup saving is weighed against the cost of
// holding the anticipated units over the horizon; the comparison runs on
// decimals because the holding cost is money, not hours. Extra production is
// an economic choice and never displaces the current order's own quantity.
func AnticipatedQuantity(future []entities.Order, horizonHours float64, unitHoldingCost decimal.Decimal) entities.Quantity {
	if len(future) == 0 {
		return 0
	}

	var futureQty entities.Quantity
	for _, o := range future {
		_, qty, err := o.LegacyDemand()
		if err != nil {
			continue
		}
		futureQty += qty
	}
	if futureQty <= 0 {
		return 0
	}

	holdingCost := decimal.NewFromInt(int64(futureQty)).
		Mul(unitHoldingCost).
		Mul(decimal.NewFromFloat(horizonHours))
	saving := decimal.NewFromFloat(EstimatedSetupSavingHours)

	if saving.GreaterThan(holdingCost) {
		return entities.Quantity(float64(futureQty) * AnticipationShare)
	}
	return 0
}
