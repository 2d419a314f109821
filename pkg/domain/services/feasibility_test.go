package services

import (
	"strings"
	"testing"

	"github.com/barron/scheduler/pkg/domain/entities"
)

func twoMachinePark() *entities.Park {
	return entities.NewPark(
		&entities.Machine{Name: "Linea_1", Capacity: 120},
		&entities.Machine{Name: "Linea_2", Capacity: 90},
	)
}

func TestCheckFeasibility_Feasible(t *testing.T) {
	tasks := []entities.ProductTask{
		{Product: "A", Quantity: 800, OrderID: "OT1001", Due: 12, Cluster: 5},
		{Product: "B", Quantity: 500, OrderID: "OT1002", Due: 18, Cluster: 4},
	}

	report := CheckFeasibility(tasks, twoMachinePark(), entities.DefaultSetupHours)

	if !report.Feasible {
		t.Errorf("report.Feasible = false, want true; issues: %v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Errorf("got %d issues, want 0", len(report.Issues))
	}
}

func TestCheckFeasibility_OverloadedProduct(t *testing.T) {
	// 10000 units on 10 units/hour cannot land before hour 5.
	park := entities.NewPark(&entities.Machine{Name: "Linea_1", Capacity: 10})
	tasks := []entities.ProductTask{
		{Product: "X", Quantity: 10000, OrderID: "OT1", Due: 5, Cluster: 1},
	}

	report := CheckFeasibility(tasks, park, entities.DefaultSetupHours)

	if report.Feasible {
		t.Fatal("report.Feasible = true, want false")
	}
	if len(report.Issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(report.Issues))
	}
	issue := report.Issues[0]
	if issue.Product != "X" {
		t.Errorf("issue.Product = %s, want X", issue.Product)
	}
	if !strings.Contains(issue.Reason, "X") {
		t.Errorf("issue.Reason %q does not cite the product", issue.Reason)
	}
}

func TestCheckFeasibility_DoesNotMutateInputs(t *testing.T) {
	park := twoMachinePark()
	tasks := []entities.ProductTask{
		{Product: "A", Quantity: 800, OrderID: "OT1001", Due: 12, Cluster: 5},
	}

	CheckFeasibility(tasks, park, entities.DefaultSetupHours)
	CheckFeasibility(tasks, park, entities.DefaultSetupHours)

	m, _ := park.Get("Linea_1")
	if m.AvailableAt != 0 || m.LastProduct != "" {
		t.Errorf("feasibility check mutated machine state: %+v", m)
	}
	if tasks[0].Quantity != 800 {
		t.Errorf("feasibility check mutated task quantity: %d", tasks[0].Quantity)
	}
}

func TestCheckFeasibility_EmptyPark(t *testing.T) {
	tasks := []entities.ProductTask{
		{Product: "A", Quantity: 100, OrderID: "OT1", Due: 10, Cluster: 1},
	}

	report := CheckFeasibility(tasks, entities.NewPark(), entities.DefaultSetupHours)

	if report.Feasible {
		t.Error("report.Feasible = true for an empty park, want false")
	}
}
