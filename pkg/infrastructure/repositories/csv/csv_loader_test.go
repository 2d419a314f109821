package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/barron/scheduler/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadOrders(t *testing.T) {
	path := writeFile(t, "orders.csv",
		"id,due,cluster,format,qty,products\n"+
			"OT1001,12,5,A,800,\n"+
			"OT2001,20,3,,,A:200;B:300\n")

	orders, err := NewLoader().LoadOrders(path)
	if err != nil {
		t.Fatalf("LoadOrders() error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}

	legacy := orders[0]
	if legacy.ID != "OT1001" || legacy.Format != "A" || legacy.Qty != 800 {
		t.Errorf("legacy order = %+v", legacy)
	}

	modern := orders[1]
	if modern.Products["A"] != 200 || modern.Products["B"] != 300 {
		t.Errorf("modern order products = %v, want A:200 B:300", modern.Products)
	}
}

func TestLoadOrders_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad_header", "nope,due\nOT1,12\n"},
		{"bad_due", "id,due,cluster,format,qty,products\nOT1,soon,5,A,100,\n"},
		{"bad_products", "id,due,cluster,format,qty,products\nOT1,12,5,,,A200\n"},
		{"no_demand", "id,due,cluster,format,qty,products\nOT1,12,5,,,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "orders.csv", tt.content)
			if _, err := NewLoader().LoadOrders(path); err == nil {
				t.Error("LoadOrders() accepted invalid input")
			}
		})
	}
}

func TestLoadMachines(t *testing.T) {
	path := writeFile(t, "machines.csv",
		"name,capacity,available_at,last_product\n"+
			"Linea_1,120,0,A\n"+
			"Linea_2,90,,\n")

	park, err := NewLoader().LoadMachines(path)
	if err != nil {
		t.Fatalf("LoadMachines() error: %v", err)
	}
	if park.Len() != 2 {
		t.Fatalf("park has %d machines, want 2", park.Len())
	}

	m, ok := park.Get("Linea_1")
	if !ok || m.Capacity != 120 || m.LastProduct != "A" {
		t.Errorf("Linea_1 = %+v", m)
	}
	// Row order is park order.
	if park.Machines()[0].Name != "Linea_1" {
		t.Errorf("first machine = %s, want Linea_1", park.Machines()[0].Name)
	}
}

func TestLoadSetupMatrix(t *testing.T) {
	path := writeFile(t, "setups.csv",
		"from_product,to_product,hours\n"+
			"A,B,2\n"+
			"B,A,1\n")

	matrix, err := NewLoader().LoadSetupMatrix(path, entities.DefaultSetupHours)
	if err != nil {
		t.Fatalf("LoadSetupMatrix() error: %v", err)
	}

	if got := matrix.Changeover("A", "B"); got != 2 {
		t.Errorf("Changeover(A, B) = %v, want 2", got)
	}
	if got := matrix.Changeover("B", "A"); got != 1 {
		t.Errorf("Changeover(B, A) = %v, want 1", got)
	}
	if got := matrix.Changeover("A", "C"); got != entities.DefaultSetupHours {
		t.Errorf("Changeover(A, C) = %v, want the default %v", got, entities.DefaultSetupHours)
	}
}
