package services

import (
	"fmt"
	"sort"

	"github.com/barron/scheduler/pkg/domain/entities"
)

// FeasibilityIssue describes one product whose aggregate demand cannot meet
// its earliest deadline even under perfect parallel utilization.
type FeasibilityIssue struct {
	Product       entities.Product  `json:"product"`
	TotalQuantity entities.Quantity `json:"total_quantity"`
	MinimumHours  float64           `json:"minimum_hours"`
	EarliestDue   float64           `json:"earliest_due"`
	Reason        string            `json:"reason"`
}

// FeasibilityReport is the advisory output of the static capacity check.
// An infeasible report never stops the dispatcher; it only warns.
type FeasibilityReport struct {
	Feasible bool               `json:"feasible"`
	Issues   []FeasibilityIssue `json:"issues,omitempty"`
}

// CheckFeasibility computes, per product, a capacity-only lower bound on
// completion time (total demand over total park capacity plus one default
// changeover per machine) and compares it against the earliest due time
// among the product's tasks. Scheduling interactions are ignored, so a
// feasible report is necessary but not sufficient. Inputs are never mutated.
func CheckFeasibility(tasks []entities.ProductTask, park *entities.Park, defaultSetupHours float64) FeasibilityReport {
	report := FeasibilityReport{Feasible: true}

	totals := make(map[entities.Product]entities.Quantity)
	earliest := make(map[entities.Product]float64)
	for _, task := range tasks {
		totals[task.Product] += task.Quantity
		if due, ok := earliest[task.Product]; !ok || task.Due < due {
			earliest[task.Product] = task.Due
		}
	}

	products := make([]entities.Product, 0, len(totals))
	for product := range totals {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })

	totalCapacity := park.TotalCapacity()
	for _, product := range products {
		if totalCapacity <= 0 {
			report.Feasible = false
			report.Issues = append(report.Issues, FeasibilityIssue{
				Product:       product,
				TotalQuantity: totals[product],
				EarliestDue:   earliest[product],
				Reason:        fmt.Sprintf("product %s: no machine capacity available", product),
			})
			continue
		}

		minimum := float64(totals[product])/totalCapacity + float64(park.Len())*defaultSetupHours
		if minimum > earliest[product] {
			report.Feasible = false
			report.Issues = append(report.Issues, FeasibilityIssue{
				Product:       product,
				TotalQuantity: totals[product],
				MinimumHours:  minimum,
				EarliestDue:   earliest[product],
				Reason: fmt.Sprintf(
					"product %s: %d units need at least %.2fh of capacity but the earliest due is %.2fh",
					product, totals[product], minimum, earliest[product]),
			})
		}
	}

	return report
}
