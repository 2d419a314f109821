package testing

import (
	"github.com/barron/scheduler/pkg/domain/entities"
)

// BuildSampleDataset builds the reference single-product scenario: seven
// work orders over three products on a two-line park.
func BuildSampleDataset() ([]entities.Order, *entities.Park, *entities.SetupMatrix) {
	orders := []entities.Order{
		{ID: "OT1001", Due: 12, Cluster: 5, Format: "A", Qty: 800},
		{ID: "OT1002", Due: 18, Cluster: 4, Format: "B", Qty: 500},
		{ID: "OT1003", Due: 20, Cluster: 3, Format: "A", Qty: 700},
		{ID: "OT1004", Due: 28, Cluster: 2, Format: "C", Qty: 1200},
		{ID: "OT1005", Due: 30, Cluster: 4, Format: "B", Qty: 600},
		{ID: "OT1006", Due: 40, Cluster: 1, Format: "A", Qty: 1500},
		{ID: "OT1007", Due: 45, Cluster: 2, Format: "C", Qty: 900},
	}
	return orders, BuildSamplePark(), BuildSampleSetupMatrix()
}

// BuildMultiProductDataset builds a mixed scenario where every order
// requests several products, exercising decomposition and batching.
func BuildMultiProductDataset() ([]entities.Order, *entities.Park, *entities.SetupMatrix) {
	orders := []entities.Order{
		{ID: "OT2001", Due: 20, Cluster: 5, Products: map[entities.Product]entities.Quantity{"A": 200, "B": 300}},
		{ID: "OT2002", Due: 28, Cluster: 3, Products: map[entities.Product]entities.Quantity{"B": 150, "C": 400}},
		{ID: "OT2003", Due: 60, Cluster: 2, Products: map[entities.Product]entities.Quantity{"A": 450, "B": 300, "C": 200}},
	}
	return orders, BuildSamplePark(), BuildSampleSetupMatrix()
}

// BuildSamplePark builds the two-line reference park.
func BuildSamplePark() *entities.Park {
	return entities.NewPark(
		&entities.Machine{Name: "Linea_1", Capacity: 120},
		&entities.Machine{Name: "Linea_2", Capacity: 90},
	)
}

// BuildSampleSetupMatrix builds the reference changeover matrix for
// products A, B, and C.
func BuildSampleSetupMatrix() *entities.SetupMatrix {
	matrix := entities.NewSetupMatrix(entities.DefaultSetupHours)
	matrix.Set("A", "B", 1.5)
	matrix.Set("B", "A", 1.5)
	matrix.Set("A", "C", 2.0)
	matrix.Set("C", "A", 2.0)
	matrix.Set("B", "C", 1.0)
	matrix.Set("C", "B", 1.0)
	return matrix
}
