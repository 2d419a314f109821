package entities

import (
	"fmt"
	"strings"
)

// DefaultSetupHours is the changeover duration used when a transition is
// not present in the matrix.
const DefaultSetupHours = 1.5

type transition struct {
	prev, next Product
}

// SetupMatrix maps ordered (previous, next) product transitions to a
// changeover duration in hours, with a scalar default for absent pairs.
type SetupMatrix struct {
	entries      map[transition]float64
	defaultHours float64
}

// NewSetupMatrix creates an empty matrix with the given default changeover.
func NewSetupMatrix(defaultHours float64) *SetupMatrix {
	return &SetupMatrix{
		entries:      make(map[transition]float64),
		defaultHours: defaultHours,
	}
}

// ParseSetupMatrix builds a matrix from wire-format keys ("A-B" -> hours).
func ParseSetupMatrix(raw map[string]float64, defaultHours float64) (*SetupMatrix, error) {
	m := NewSetupMatrix(defaultHours)
	for key, hours := range raw {
		prev, next, found := strings.Cut(key, "-")
		if !found || prev == "" || next == "" {
			return nil, fmt.Errorf("setup time key %q: want \"<prev>-<next>\"", key)
		}
		if hours < 0 {
			return nil, fmt.Errorf("setup time %q: duration must be non-negative, got %v", key, hours)
		}
		m.Set(Product(prev), Product(next), hours)
	}
	return m, nil
}

// Set records the changeover duration for a transition.
func (m *SetupMatrix) Set(prev, next Product, hours float64) {
	m.entries[transition{prev, next}] = hours
}

// DefaultHours returns the fallback changeover duration.
func (m *SetupMatrix) DefaultHours() float64 {
	return m.defaultHours
}

// Changeover returns the setup duration for switching a machine from prev
// to next. No prior product or a same-product transition costs zero; an
// unknown transition falls back to the default. Total function, never fails.
func (m *SetupMatrix) Changeover(prev, next Product) float64 {
	if prev == "" || prev == next {
		return 0
	}
	if hours, ok := m.entries[transition{prev, next}]; ok {
		return hours
	}
	return m.defaultHours
}
