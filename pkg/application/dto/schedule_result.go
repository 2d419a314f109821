package dto

import (
	"github.com/barron/scheduler/pkg/domain/entities"
	"github.com/barron/scheduler/pkg/domain/services"
)

// ScheduleResult contains the complete output of a scheduling run. The JSON
// shape mirrors the original scheduling API: a flat timed sequence, a
// per-machine grouping for Gantt rendering, and the statistical summary.
type ScheduleResult struct {
	Schedule    []entities.ScheduleItem            `json:"schedule"`
	ByMachine   map[string][]entities.ScheduleItem `json:"schedule_by_machine"`
	Summary     entities.Summary                   `json:"summary"`
	Feasibility services.FeasibilityReport         `json:"feasibility"`
}
