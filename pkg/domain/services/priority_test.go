package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/barron/scheduler/pkg/domain/entities"
)

func legacyOrder(id string, due float64, cluster int, format entities.Product, qty entities.Quantity) entities.Order {
	return entities.Order{ID: id, Due: due, Cluster: cluster, Format: format, Qty: qty}
}

func TestPriorityScore(t *testing.T) {
	o := legacyOrder("OT1001", 12, 5, "A", 800)
	if got := PriorityScore(o); got != 2.4 {
		t.Errorf("PriorityScore() = %v, want 2.4", got)
	}
}

func TestSortByPriority_StableTies(t *testing.T) {
	orders := []entities.Order{
		legacyOrder("OT_B", 20, 2, "B", 100), // score 10
		legacyOrder("OT_A", 12, 5, "A", 800), // score 2.4
		legacyOrder("OT_C", 30, 3, "C", 100), // score 10, ties with OT_B
	}

	sorted := SortByPriority(orders)

	wantIDs := []string{"OT_A", "OT_B", "OT_C"}
	for i, id := range wantIDs {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d].ID = %s, want %s", i, sorted[i].ID, id)
		}
	}

	// Input slice must remain untouched.
	if orders[0].ID != "OT_B" {
		t.Error("SortByPriority() mutated its input")
	}
}

func TestFutureSameProduct(t *testing.T) {
	current := legacyOrder("OT1001", 12, 5, "A", 800)
	all := []entities.Order{
		current,
		legacyOrder("OT1003", 20, 3, "A", 700),  // within horizon
		legacyOrder("OT1006", 40, 1, "A", 1500), // beyond horizon
		legacyOrder("OT1002", 18, 4, "B", 500),  // other product
		legacyOrder("OT0999", 10, 4, "A", 100),  // earlier due
	}

	future := FutureSameProduct(current, all, 12)

	if len(future) != 1 {
		t.Fatalf("got %d future orders, want 1", len(future))
	}
	if future[0].ID != "OT1003" {
		t.Errorf("future[0].ID = %s, want OT1003", future[0].ID)
	}
}

func TestAnticipatedQuantity(t *testing.T) {
	tests := []struct {
		name        string
		future      []entities.Order
		holdingCost decimal.Decimal
		want        entities.Quantity
	}{
		{
			name:        "no_future_orders",
			future:      nil,
			holdingCost: decimal.NewFromFloat(0.002),
			want:        0,
		},
		{
			name: "saving_beats_holding_cost",
			// 500 units * 0.002 * 12h = 12 cost vs 1.5 saving -> no.
			// 50 units * 0.002 * 12h = 1.2 cost vs 1.5 saving -> yes, 50% ahead.
			future:      []entities.Order{legacyOrder("OT2", 20, 3, "A", 50)},
			holdingCost: decimal.NewFromFloat(0.002),
			want:        25,
		},
		{
			name:        "holding_cost_beats_saving",
			future:      []entities.Order{legacyOrder("OT2", 20, 3, "A", 500)},
			holdingCost: decimal.NewFromFloat(0.002),
			want:        0,
		},
		{
			name:        "free_holding_always_batches",
			future:      []entities.Order{legacyOrder("OT2", 20, 3, "A", 700)},
			holdingCost: decimal.Zero,
			want:        350,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnticipatedQuantity(tt.future, 12, tt.holdingCost)
			if got != tt.want {
				t.Errorf("AnticipatedQuantity() = %d, want %d", got, tt.want)
			}
		})
	}
}
