package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/barron/scheduler/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		ordersFile   = flag.String("orders", "", "Path to orders CSV file")
		machinesFile = flag.String("machines", "", "Path to machines CSV file")
		setupsFile   = flag.String("setups", "", "Path to setup matrix CSV file")
		mode         = flag.String("mode", "optimized", "Engine mode: optimized, legacy")
		outputDir    = flag.String("output", "", "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, svg")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ScenarioDir:  *scenarioDir,
		OrdersFile:   *ordersFile,
		MachinesFile: *machinesFile,
		SetupsFile:   *setupsFile,
		Mode:         *mode,
		OutputDir:    *outputDir,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	}

	cmd := commands.NewScheduleCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
