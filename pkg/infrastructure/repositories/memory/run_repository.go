package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/barron/scheduler/pkg/application/dto"
)

// Run is one stored scheduling run.
type Run struct {
	ID        string              `json:"id"`
	Mode      string              `json:"mode"`
	CreatedAt time.Time           `json:"created_at"`
	Result    *dto.ScheduleResult `json:"result"`
}

// RunRepository provides in-memory storage of finished scheduling runs.
// It is safe for concurrent use by the HTTP handlers.
type RunRepository struct {
	mutex sync.RWMutex
	runs  map[string]*Run
	seq   int
}

// NewRunRepository creates a new in-memory run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[string]*Run)}
}

// Save stores a run result and returns the generated run ID.
func (r *RunRepository) Save(mode string, result *dto.ScheduleResult) *Run {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.seq++
	run := &Run{
		ID:        fmt.Sprintf("run-%06d", r.seq),
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}
	r.runs[run.ID] = run
	return run
}

// Get returns the run with the given ID.
func (r *RunRepository) Get(id string) (*Run, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return run, nil
}

// List returns all stored runs, newest first.
func (r *RunRepository) List() []*Run {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	runs := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	return runs
}

// Len returns the number of stored runs.
func (r *RunRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.runs)
}
