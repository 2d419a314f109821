package entities

import "testing"

func defaultTestMatrix() *SetupMatrix {
	m := NewSetupMatrix(DefaultSetupHours)
	m.Set("A", "B", 1.5)
	m.Set("B", "A", 1.5)
	m.Set("A", "C", 2.0)
	m.Set("C", "A", 2.0)
	m.Set("B", "C", 1.0)
	m.Set("C", "B", 1.0)
	return m
}

func TestSetupMatrix_Changeover(t *testing.T) {
	m := defaultTestMatrix()

	tests := []struct {
		name string
		prev Product
		next Product
		want float64
	}{
		{"no_prior_product", "", "A", 0},
		{"same_product", "A", "A", 0},
		{"known_transition", "A", "C", 2.0},
		{"asymmetric_lookup", "B", "C", 1.0},
		{"unknown_transition_uses_default", "A", "D", DefaultSetupHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Changeover(tt.prev, tt.next); got != tt.want {
				t.Errorf("Changeover(%q, %q) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestParseSetupMatrix(t *testing.T) {
	m, err := ParseSetupMatrix(map[string]float64{"A-B": 1.5, "B-C": 1.0}, 2.5)
	if err != nil {
		t.Fatalf("ParseSetupMatrix() failed: %v", err)
	}
	if got := m.Changeover("A", "B"); got != 1.5 {
		t.Errorf("Changeover(A, B) = %v, want 1.5", got)
	}
	if got := m.Changeover("C", "A"); got != 2.5 {
		t.Errorf("Changeover(C, A) = %v, want default 2.5", got)
	}

	if _, err := ParseSetupMatrix(map[string]float64{"AB": 1.5}, 1.5); err == nil {
		t.Error("ParseSetupMatrix() should reject keys without a separator")
	}
	if _, err := ParseSetupMatrix(map[string]float64{"A-B": -1}, 1.5); err == nil {
		t.Error("ParseSetupMatrix() should reject negative durations")
	}
}
