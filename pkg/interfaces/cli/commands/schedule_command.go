package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/application/services"
	"github.com/barron/scheduler/pkg/domain/entities"
	"github.com/barron/scheduler/pkg/infrastructure/repositories/csv"
	"github.com/barron/scheduler/pkg/interfaces/cli/output"
)

// Config holds configuration for the schedule command
type Config struct {
	ScenarioDir  string
	OrdersFile   string
	MachinesFile string
	SetupsFile   string
	Mode         string
	OutputDir    string
	Format       string
	Verbose      bool
	Help         bool
}

// ScheduleCommand handles the main scheduling execution logic
type ScheduleCommand struct {
	config Config
}

// NewScheduleCommand creates a new schedule command with the given configuration
func NewScheduleCommand(config Config) *ScheduleCommand {
	return &ScheduleCommand{config: config}
}

// Execute runs the schedule command
func (c *ScheduleCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	loader := csv.NewLoader()

	orders, err := loader.LoadOrders(files["Orders"])
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}

	park, err := loader.LoadMachines(files["Machines"])
	if err != nil {
		return fmt.Errorf("error loading machines: %w", err)
	}

	engineConfig := services.DefaultConfig()
	matrix, err := loader.LoadSetupMatrix(files["Setups"], engineConfig.DefaultSetupHours)
	if err != nil {
		return fmt.Errorf("error loading setup matrix: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Loaded %d orders, %d machines\n\n", len(orders), park.Len())
	}

	startTime := time.Now()
	result, err := c.runEngine(ctx, engineConfig, orders, park, matrix)
	elapsed := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error computing schedule: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Schedule computed in %v\n\n", elapsed)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Elapsed:   elapsed,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

func (c *ScheduleCommand) runEngine(ctx context.Context, engineConfig services.Config, orders []entities.Order, park *entities.Park, matrix *entities.SetupMatrix) (*dto.ScheduleResult, error) {
	if c.engineMode() == "legacy" {
		return services.NewLegacyService(engineConfig, nil).Schedule(ctx, orders, park, matrix)
	}
	return services.NewSchedulerService(engineConfig, nil).Schedule(ctx, orders, park, matrix)
}

// validateInputs validates the command configuration
func (c *ScheduleCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.OrdersFile == "" || c.config.MachinesFile == "" || c.config.SetupsFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	if c.config.Mode != "" && c.config.Mode != "optimized" && c.config.Mode != "legacy" {
		return fmt.Errorf("unknown mode %q (expected optimized or legacy)", c.config.Mode)
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *ScheduleCommand) resolveInputFiles() (map[string]string, error) {
	var ordersPath, machinesPath, setupsPath string

	if c.config.ScenarioDir != "" {
		ordersPath = filepath.Join(c.config.ScenarioDir, "orders.csv")
		machinesPath = filepath.Join(c.config.ScenarioDir, "machines.csv")
		setupsPath = filepath.Join(c.config.ScenarioDir, "setups.csv")
	} else {
		ordersPath = c.config.OrdersFile
		machinesPath = c.config.MachinesFile
		setupsPath = c.config.SetupsFile
	}

	files := map[string]string{
		"Orders":   ordersPath,
		"Machines": machinesPath,
		"Setups":   setupsPath,
	}
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return files, nil
}

// printHeader prints the command header information
func (c *ScheduleCommand) printHeader(files map[string]string) {
	fmt.Printf("Production Scheduler CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Orders: %s\n", files["Orders"])
	fmt.Printf("  Machines: %s\n", files["Machines"])
	fmt.Printf("  Setups: %s\n", files["Setups"])
	fmt.Printf("Engine mode: %s\n", c.engineMode())
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

func (c *ScheduleCommand) engineMode() string {
	if c.config.Mode == "" {
		return "optimized"
	}
	return c.config.Mode
}

// showHelp displays the help message
func (c *ScheduleCommand) showHelp() {
	fmt.Printf(`Production Scheduler CLI - heuristic dispatch of work orders onto machines

USAGE:
    scheduler -scenario <directory>             # Use scenario directory with CSV files
    scheduler -orders <file> -machines <file> -setups <file>

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -orders <file>      Path to orders CSV file
    -machines <file>    Path to machines CSV file
    -setups <file>      Path to setup matrix CSV file
    -mode <mode>        Engine mode: optimized, legacy (default: optimized)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, svg (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── orders.csv      # Work orders
    ├── machines.csv    # Machine park
    └── setups.csv      # Changeover matrix

CSV FILE FORMATS:

orders.csv:
    id,due,cluster,format,qty,products
    OT1001,12,5,A,800,
    OT2001,20,3,,,A:200;B:300

machines.csv:
    name,capacity,available_at,last_product
    Linea_1,120,0,
    Linea_2,90,0,A

setups.csv:
    from_product,to_product,hours
    A,B,1.5
    B,A,1.5

EXAMPLES:
    # Run a scenario with the two-tier engine
    scheduler -scenario examples/barron_plant -verbose

    # Run the legacy single-order dispatcher
    scheduler -scenario examples/barron_plant -mode legacy

    # Generate a Gantt chart
    scheduler -scenario examples/barron_plant -format svg -output results/

    # Generate JSON output
    scheduler -orders orders.csv -machines machines.csv -setups setups.csv -format json
`)
}
