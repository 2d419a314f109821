package entities

import (
	"errors"
	"testing"
)

func TestNewOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		due      float64
		cluster  int
		products map[Product]Quantity
		wantErr  bool
	}{
		{
			name:     "valid_multi_product",
			id:       "OT1",
			due:      20,
			cluster:  5,
			products: map[Product]Quantity{"A": 200, "B": 300},
			wantErr:  false,
		},
		{
			name:     "empty_id",
			id:       "",
			due:      20,
			cluster:  5,
			products: map[Product]Quantity{"A": 200},
			wantErr:  true,
		},
		{
			name:     "non_positive_due",
			id:       "OT1",
			due:      0,
			cluster:  5,
			products: map[Product]Quantity{"A": 200},
			wantErr:  true,
		},
		{
			name:     "non_positive_cluster",
			id:       "OT1",
			due:      20,
			cluster:  0,
			products: map[Product]Quantity{"A": 200},
			wantErr:  true,
		},
		{
			name:    "no_products",
			id:      "OT1",
			due:     20,
			cluster: 5,
			wantErr: true,
		},
		{
			name:     "negative_quantity",
			id:       "OT1",
			due:      20,
			cluster:  5,
			products: map[Product]Quantity{"A": -1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.id, tt.due, tt.cluster, tt.products)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrder_Demands_LegacyNormalization(t *testing.T) {
	order := Order{ID: "OT1001", Due: 12, Cluster: 5, Format: "A", Qty: 800}

	demands, err := order.Demands()
	if err != nil {
		t.Fatalf("Demands() failed: %v", err)
	}
	if len(demands) != 1 {
		t.Fatalf("expected one demand, got %d", len(demands))
	}
	if demands["A"] != 800 {
		t.Errorf("demands[A] = %d, want 800", demands["A"])
	}
}

func TestOrder_Demands_Invalid(t *testing.T) {
	order := Order{ID: "OT_EMPTY", Due: 12, Cluster: 5}

	_, err := order.Demands()
	if !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("Demands() error = %v, want ErrInvalidOrder", err)
	}
}

func TestOrder_SortedProducts(t *testing.T) {
	order := Order{
		ID: "OT1", Due: 20, Cluster: 5,
		Products: map[Product]Quantity{"C": 100, "A": 200, "B": 300},
	}

	products, err := order.SortedProducts()
	if err != nil {
		t.Fatalf("SortedProducts() failed: %v", err)
	}

	want := []Product{"A", "B", "C"}
	if len(products) != len(want) {
		t.Fatalf("got %d products, want %d", len(products), len(want))
	}
	for i, product := range want {
		if products[i] != product {
			t.Errorf("products[%d] = %s, want %s", i, products[i], product)
		}
	}
}

func TestOrder_TotalQuantity(t *testing.T) {
	order := Order{
		ID: "OT1", Due: 20, Cluster: 5,
		Products: map[Product]Quantity{"A": 200, "B": 300},
	}

	if got := order.TotalQuantity(); got != 500 {
		t.Errorf("TotalQuantity() = %d, want 500", got)
	}
}

func TestOrder_LegacyDemand(t *testing.T) {
	legacy := Order{ID: "OT1001", Due: 12, Cluster: 5, Format: "A", Qty: 800}
	product, qty, err := legacy.LegacyDemand()
	if err != nil {
		t.Fatalf("LegacyDemand() failed: %v", err)
	}
	if product != "A" || qty != 800 {
		t.Errorf("LegacyDemand() = (%s, %d), want (A, 800)", product, qty)
	}

	single := Order{ID: "OT2", Due: 20, Cluster: 3, Products: map[Product]Quantity{"B": 400}}
	product, qty, err = single.LegacyDemand()
	if err != nil {
		t.Fatalf("LegacyDemand() failed for single-product map: %v", err)
	}
	if product != "B" || qty != 400 {
		t.Errorf("LegacyDemand() = (%s, %d), want (B, 400)", product, qty)
	}

	multi := Order{ID: "OT3", Due: 20, Cluster: 3, Products: map[Product]Quantity{"A": 1, "B": 2}}
	if _, _, err := multi.LegacyDemand(); err == nil {
		t.Error("LegacyDemand() should fail for multi-product orders")
	}
}
