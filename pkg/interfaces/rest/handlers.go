package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/application/services"
	"github.com/barron/scheduler/pkg/domain/entities"
)

// Engine modes accepted by the schedule endpoint.
const (
	ModeOptimized = "optimized"
	ModeLegacy    = "legacy"
)

const startDatetimeLayout = "2006-01-02T15:04:05"

// MachineSpec is the wire form of one machine.
type MachineSpec struct {
	Capacity    float64          `json:"capacity"`
	AvailableAt float64          `json:"available_at"`
	LastFormat  entities.Product `json:"last_format"`
}

// ScheduleRequest is the schedule endpoint payload. Field names follow the
// original scheduling API; the calendar fields are optional and only affect
// the wall-clock annotations.
type ScheduleRequest struct {
	Orders     []entities.Order       `json:"orders"`
	Machines   map[string]MachineSpec `json:"machines"`
	SetupTimes map[string]float64     `json:"setup_times"`
	Mode       string                 `json:"mode"`

	LookaheadHorizonHours *float64 `json:"horizonte_aprovechamiento"`
	UnitHoldingCost       *float64 `json:"costo_inventario_unitario"`
	DefaultSetupHours     *float64 `json:"default_setup_time"`

	StartDatetime   string  `json:"start_datetime"`
	WorkHoursPerDay float64 `json:"work_hours_per_day"`
	WorkStartHour   int     `json:"work_start_hour"`
	WorkDays        []int   `json:"work_days"`
}

// CreateSchedule computes a schedule from the request payload.
func (s *SchedulerAPI) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeOptimized
	}
	if mode != ModeOptimized && mode != ModeLegacy {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mode %q", mode)})
		return
	}

	orders, park, matrix, calendar, engineConfig, err := s.buildRunInputs(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	started := time.Now()
	result, err := s.runEngine(c, mode, engineConfig, orders, park, matrix)
	if err != nil {
		s.metrics.RecordFailure(mode)
		status := http.StatusInternalServerError
		if errors.Is(err, entities.ErrInvalidOrder) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.metrics.RecordRun(mode, result, time.Since(started))

	if calendar != nil {
		calendar.Annotate(result)
	}
	run := s.runs.Save(mode, result)

	c.JSON(http.StatusOK, gin.H{
		"run_id":              run.ID,
		"mode":                mode,
		"schedule":            result.Schedule,
		"schedule_by_machine": result.ByMachine,
		"summary":             result.Summary,
		"feasibility":         result.Feasibility,
	})
}

func (s *SchedulerAPI) runEngine(c *gin.Context, mode string, config services.Config, orders []entities.Order, park *entities.Park, matrix *entities.SetupMatrix) (*dto.ScheduleResult, error) {
	// The engines are stateless, so a per-request instance carrying the
	// request's tuning is as cheap as a shared one.
	ctx := c.Request.Context()
	if mode == ModeLegacy {
		return services.NewLegacyService(config, s.store).Schedule(ctx, orders, park, matrix)
	}
	return services.NewSchedulerService(config, s.store).Schedule(ctx, orders, park, matrix)
}

// buildRunInputs validates and converts the request into engine inputs.
func (s *SchedulerAPI) buildRunInputs(req *ScheduleRequest) ([]entities.Order, *entities.Park, *entities.SetupMatrix, *services.Calendar, services.Config, error) {
	config := s.baseEngineConfig()
	if req.LookaheadHorizonHours != nil {
		if *req.LookaheadHorizonHours <= 0 {
			return nil, nil, nil, nil, config, fmt.Errorf("horizonte_aprovechamiento must be positive")
		}
		config.LookaheadHorizonHours = *req.LookaheadHorizonHours
	}
	if req.UnitHoldingCost != nil {
		if *req.UnitHoldingCost < 0 {
			return nil, nil, nil, nil, config, fmt.Errorf("costo_inventario_unitario must be non-negative")
		}
		config.UnitHoldingCost = decimal.NewFromFloat(*req.UnitHoldingCost)
	}
	if req.DefaultSetupHours != nil {
		if *req.DefaultSetupHours <= 0 {
			return nil, nil, nil, nil, config, fmt.Errorf("default_setup_time must be positive")
		}
		config.DefaultSetupHours = *req.DefaultSetupHours
	}

	if len(req.Orders) == 0 {
		return nil, nil, nil, nil, config, fmt.Errorf("orders cannot be empty")
	}
	for i := range req.Orders {
		o := &req.Orders[i]
		if o.ID == "" || o.Due <= 0 || o.Cluster <= 0 {
			return nil, nil, nil, nil, config, fmt.Errorf("order %d: id, due and cluster are required", i)
		}
		if _, err := o.Demands(); err != nil {
			return nil, nil, nil, nil, config, err
		}
	}

	if len(req.Machines) == 0 {
		return nil, nil, nil, nil, config, fmt.Errorf("machines cannot be empty")
	}
	specs := make(map[string]*entities.Machine, len(req.Machines))
	for name, spec := range req.Machines {
		machine, err := entities.NewMachine(name, spec.Capacity, spec.AvailableAt, spec.LastFormat)
		if err != nil {
			return nil, nil, nil, nil, config, err
		}
		specs[name] = machine
	}
	park := entities.ParkFromMap(specs)

	matrix, err := entities.ParseSetupMatrix(req.SetupTimes, config.DefaultSetupHours)
	if err != nil {
		return nil, nil, nil, nil, config, err
	}

	calendar, err := buildCalendar(req)
	if err != nil {
		return nil, nil, nil, nil, config, err
	}

	return req.Orders, park, matrix, calendar, config, nil
}

func buildCalendar(req *ScheduleRequest) (*services.Calendar, error) {
	if req.StartDatetime == "" {
		return nil, nil
	}
	start, err := time.Parse(startDatetimeLayout, req.StartDatetime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_datetime %q (expected %s)", req.StartDatetime, startDatetimeLayout)
	}

	calendar := services.Calendar{
		Start:        start,
		HoursPerDay:  req.WorkHoursPerDay,
		DayStartHour: req.WorkStartHour,
	}
	if len(req.WorkDays) > 0 && len(req.WorkDays) < 7 {
		days := make(map[time.Weekday]bool, len(req.WorkDays))
		for _, d := range req.WorkDays {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid work day %d (expected 0-6, Monday first)", d)
			}
			// The wire uses 0 = Monday; time.Weekday uses 0 = Sunday.
			days[time.Weekday((d+1)%7)] = true
		}
		calendar.WorkDays = days
	}
	return &calendar, nil
}

func (s *SchedulerAPI) baseEngineConfig() services.Config {
	return services.Config{
		LookaheadHorizonHours: s.config.Scheduler.LookaheadHorizonHours,
		UnitHoldingCost:       decimal.NewFromFloat(s.config.Scheduler.UnitHoldingCost),
		DefaultSetupHours:     s.config.Scheduler.DefaultSetupHours,
		UrgencyThresholdHours: s.config.Scheduler.UrgencyThresholdHours,
	}
}

// ListRuns returns every stored run without the full schedules.
func (s *SchedulerAPI) ListRuns(c *gin.Context) {
	runs := s.runs.List()
	summaries := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, gin.H{
			"id":         run.ID,
			"mode":       run.Mode,
			"created_at": run.CreatedAt,
			"summary":    run.Result.Summary,
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": summaries})
}

// GetRun returns one stored run with its full schedule.
func (s *SchedulerAPI) GetRun(c *gin.Context) {
	run, err := s.runs.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}
