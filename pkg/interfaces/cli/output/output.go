package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
}

// Generate creates output in the specified format
func Generate(result *dto.ScheduleResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "svg":
		return generateSVGOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.ScheduleResult, config Config) error {
	summary := result.Summary

	fmt.Printf("Schedule Summary\n")
	fmt.Printf("================\n\n")
	fmt.Printf("Production runs: %d\n", summary.TotalProduction)
	fmt.Printf("Changeovers:     %d\n", summary.TotalSetups)
	fmt.Printf("Makespan:        %.2f h\n", summary.HorizonUsed)
	fmt.Printf("Client units:    %d\n", summary.QtyClient)
	if summary.QtyExtra > 0 {
		fmt.Printf("Extra units:     %d\n", summary.QtyExtra)
	}
	if config.Elapsed > 0 {
		fmt.Printf("Compute time:    %v\n", config.Elapsed)
	}
	fmt.Println()

	if !result.Feasibility.Feasible {
		fmt.Printf("Feasibility warnings:\n")
		for _, issue := range result.Feasibility.Issues {
			fmt.Printf("  - %s\n", issue.Reason)
		}
		fmt.Println()
	}

	machines := make([]string, 0, len(result.ByMachine))
	for machine := range result.ByMachine {
		machines = append(machines, machine)
	}
	sort.Strings(machines)

	for _, machine := range machines {
		fmt.Printf("Timeline %s:\n", machine)
		fmt.Printf("%-12s %-8s %-8s %-8s %-10s %-20s\n",
			"Type", "Start", "End", "Product", "Quantity", "Orders")
		for _, item := range result.ByMachine[machine] {
			fmt.Printf("%-12s %-8.2f %-8.2f %-8s %-10d %-20s\n",
				item.Type, item.Start, item.End, item.Product, item.Quantity, itemOrders(item))
		}
		fmt.Println()
	}

	if len(summary.Late) > 0 {
		fmt.Printf("Late orders:\n")
		fmt.Printf("%-12s %-10s %-10s %-8s\n", "Order", "Due", "Completed", "Late")
		for _, record := range summary.Late {
			fmt.Printf("%-12s %-10.2f %-10.2f %-8.2f\n",
				record.OrderID, record.Due, record.CompletedAt, record.HoursLate)
		}
		fmt.Println()
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

func itemOrders(item entities.ScheduleItem) string {
	if item.OrderID != "" {
		return item.OrderID
	}
	if len(item.OrderIDs) == 0 {
		return "-"
	}
	orders := item.OrderIDs[0]
	for _, id := range item.OrderIDs[1:] {
		orders += "," + id
	}
	return orders
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ScheduleResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "schedule.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateSVGOutput renders the schedule as a Gantt chart
func generateSVGOutput(result *dto.ScheduleResult, config Config) error {
	chart := NewGanttChart(result)
	svg := chart.GenerateSVG(result)

	if config.OutputDir == "" {
		fmt.Println(svg)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "gantt.svg")
	if err := os.WriteFile(filename, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("Gantt chart saved to: %s\n", filename)
	}
	return nil
}
