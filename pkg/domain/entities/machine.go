package entities

import (
	"fmt"
	"sort"
)

// Machine is a named production resource. AvailableAt and LastProduct are
// the only state mutated during a scheduling run, and only ever on a
// working copy of the park.
type Machine struct {
	Name        string  `json:"name"`
	Capacity    float64 `json:"capacity"` // units per hour
	AvailableAt float64 `json:"available_at"`
	LastProduct Product `json:"last_product,omitempty"` // empty = not tooled
}

// NewMachine creates a validated machine.
func NewMachine(name string, capacity, availableAt float64, lastProduct Product) (*Machine, error) {
	if name == "" {
		return nil, fmt.Errorf("machine name cannot be empty")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("machine %s: capacity must be positive, got %v", name, capacity)
	}
	if availableAt < 0 {
		return nil, fmt.Errorf("machine %s: available_at must be non-negative, got %v", name, availableAt)
	}
	return &Machine{Name: name, Capacity: capacity, AvailableAt: availableAt, LastProduct: lastProduct}, nil
}

// Park is an insertion-ordered collection of machines. Iteration order is
// part of the behavioral contract: tie-breaks during dispatch follow park
// order, so the order must be explicit rather than map-derived.
type Park struct {
	machines []*Machine
	byName   map[string]*Machine
}

// NewPark creates a park preserving the given machine order.
func NewPark(machines ...*Machine) *Park {
	p := &Park{byName: make(map[string]*Machine, len(machines))}
	for _, m := range machines {
		p.Add(m)
	}
	return p
}

// ParkFromMap builds a park from a name-keyed map, sorted by machine name
// so that map inputs (e.g. JSON requests) schedule deterministically.
func ParkFromMap(machines map[string]*Machine) *Park {
	names := make([]string, 0, len(machines))
	for name := range machines {
		names = append(names, name)
	}
	sort.Strings(names)

	p := &Park{byName: make(map[string]*Machine, len(machines))}
	for _, name := range names {
		m := machines[name]
		if m.Name == "" {
			m.Name = name
		}
		p.Add(m)
	}
	return p
}

// Add appends a machine, replacing any existing machine of the same name.
func (p *Park) Add(m *Machine) {
	if existing, ok := p.byName[m.Name]; ok {
		*existing = *m
		return
	}
	p.machines = append(p.machines, m)
	p.byName[m.Name] = m
}

// Machines returns the machines in park order.
func (p *Park) Machines() []*Machine {
	return p.machines
}

// Get returns the machine with the given name.
func (p *Park) Get(name string) (*Machine, bool) {
	m, ok := p.byName[name]
	return m, ok
}

// Len returns the number of machines in the park.
func (p *Park) Len() int {
	return len(p.machines)
}

// TotalCapacity sums the production rate across all machines.
func (p *Park) TotalCapacity() float64 {
	var total float64
	for _, m := range p.machines {
		total += m.Capacity
	}
	return total
}

// Clone returns a deep copy of the park. Every scheduling run clones the
// caller's park so concurrent runs never share mutable machine state.
func (p *Park) Clone() *Park {
	clone := &Park{
		machines: make([]*Machine, 0, len(p.machines)),
		byName:   make(map[string]*Machine, len(p.machines)),
	}
	for _, m := range p.machines {
		copied := *m
		clone.machines = append(clone.machines, &copied)
		clone.byName[copied.Name] = &copied
	}
	return clone
}
