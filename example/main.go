package main

import (
	"context"
	"fmt"

	"github.com/barron/scheduler/pkg/application/services"
	testdata "github.com/barron/scheduler/pkg/infrastructure/testing"
)

func main() {
	ctx := context.Background()

	orders, park, matrix := testdata.BuildSampleDataset()

	fmt.Println("Barron production scheduler demo")
	fmt.Printf("Orders: %d, Machines: %d, Total capacity: %.0f units/h\n\n",
		len(orders), park.Len(), park.TotalCapacity())

	config := services.DefaultConfig()

	// Two-tier engine: same-product demand is batched and may split across
	// machines.
	scheduler := services.NewSchedulerService(config, nil)
	result, err := scheduler.Schedule(ctx, orders, park, matrix)
	if err != nil {
		fmt.Printf("Scheduling failed: %v\n", err)
		return
	}
	printSummary("optimized", result.Summary.TotalProduction, result.Summary.TotalSetups,
		result.Summary.HorizonUsed, len(result.Summary.Late))

	// Legacy engine: one order at a time, priority ordered.
	legacy := services.NewLegacyService(config, nil)
	legacyResult, err := legacy.Schedule(ctx, orders, park, matrix)
	if err != nil {
		fmt.Printf("Legacy scheduling failed: %v\n", err)
		return
	}
	printSummary("legacy", legacyResult.Summary.TotalProduction, legacyResult.Summary.TotalSetups,
		legacyResult.Summary.HorizonUsed, len(legacyResult.Summary.Late))

	fmt.Println("\nOptimized timeline:")
	for _, item := range result.Schedule {
		switch {
		case item.Type == "SETUP":
			fmt.Printf("  [%s] SETUP %.1f -> %.1f\n", item.Machine, item.Start, item.End)
		default:
			fmt.Printf("  [%s] %s x%d %.1f -> %.1f (orders %v)\n",
				item.Machine, item.Product, item.Quantity, item.Start, item.End, item.OrderIDs)
		}
	}

	if len(result.Summary.Late) > 0 {
		fmt.Println("\nLate orders:")
		for _, record := range result.Summary.Late {
			fmt.Printf("  %s: %.1fh late (due %.1f, completed %.1f)\n",
				record.OrderID, record.HoursLate, record.Due, record.CompletedAt)
		}
	}
}

func printSummary(mode string, runs, setups int, makespan float64, late int) {
	fmt.Printf("[%s] production runs: %d, setups: %d, makespan: %.2fh, late orders: %d\n",
		mode, runs, setups, makespan, late)
}
