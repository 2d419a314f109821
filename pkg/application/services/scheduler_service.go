package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/domain/entities"
	domainservices "github.com/barron/scheduler/pkg/domain/services"
	"github.com/barron/scheduler/pkg/infrastructure/events"
)

const (
	// DefaultLookaheadHorizonHours bounds how far ahead the legacy
	// dispatcher scans for same-product orders worth batching.
	DefaultLookaheadHorizonHours = 12

	// DefaultUrgencyThresholdHours splits tasks into the urgent and normal
	// dispatch tiers. Urgent work is committed before any normal work.
	DefaultUrgencyThresholdHours = 40
)

// ErrNoEligibleMachine marks a batch that no machine could run, most
// commonly because the park is empty. Such batches are skipped rather than
// failing the run; the shortfall is visible in the output totals.
var ErrNoEligibleMachine = errors.New("no eligible machine for product")

// Config carries the tunable knobs of a scheduling run. Zero values are not
// meaningful; start from DefaultConfig.
type Config struct {
	LookaheadHorizonHours float64
	UnitHoldingCost       decimal.Decimal
	DefaultSetupHours     float64
	UrgencyThresholdHours float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		LookaheadHorizonHours: DefaultLookaheadHorizonHours,
		UnitHoldingCost:       decimal.NewFromFloat(0.002),
		DefaultSetupHours:     entities.DefaultSetupHours,
		UrgencyThresholdHours: DefaultUrgencyThresholdHours,
	}
}

// SchedulerService runs the two-tier product-batch dispatcher. The service
// itself is stateless and safe for concurrent use: every run works on a
// clone of the caller's park. The event store is optional.
type SchedulerService struct {
	config Config
	events events.EventStore
}

// NewSchedulerService creates a scheduler. Pass nil for store to disable
// event emission.
func NewSchedulerService(config Config, store events.EventStore) *SchedulerService {
	return &SchedulerService{config: config, events: store}
}

// taskState tracks one product task while assignments are poured into it.
type taskState struct {
	task       *entities.ProductTask
	inputIndex int
	remaining  entities.Quantity
	completed  float64
}

// productBatch aggregates all same-product demand of one tier.
type productBatch struct {
	product  entities.Product
	quantity entities.Quantity
	minDue   float64
	orderIDs []string
	tasks    []*taskState
}

// Schedule dispatches the orders onto the park and returns the full plan.
// Orders are expanded into per-product tasks, tasks are split into an urgent
// and a normal tier by due time, and each tier's product batches are placed
// on machines in earliest-due order. The input park and matrix are never
// mutated.
func (s *SchedulerService) Schedule(ctx context.Context, orders []entities.Order, park *entities.Park, matrix *entities.SetupMatrix) (*dto.ScheduleResult, error) {
	tasks, err := DecomposeOrders(orders)
	if err != nil {
		return nil, err
	}

	working := park.Clone()
	report := domainservices.CheckFeasibility(tasks, working, s.config.DefaultSetupHours)

	states := make([]*taskState, len(tasks))
	for i := range tasks {
		states[i] = &taskState{task: &tasks[i], inputIndex: i, remaining: tasks[i].Quantity}
	}

	var urgent, normal []*taskState
	for _, st := range states {
		if st.task.Due <= s.config.UrgencyThresholdHours {
			urgent = append(urgent, st)
		} else {
			normal = append(normal, st)
		}
	}

	var schedule []entities.ScheduleItem
	for _, tier := range [][]*taskState{urgent, normal} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batches := groupByProduct(tier)
		for _, batch := range batches {
			items, err := s.dispatchBatch(batch, working, matrix)
			if err != nil {
				s.emit(events.NewScheduleRunFailedEvent(firstOrderID(orders), "optimized", err.Error()))
				return nil, err
			}
			schedule = append(schedule, items...)
		}
	}

	result := s.assemble(orders, states, schedule, report)
	s.emit(events.NewScheduleRunCompletedEvent(
		firstOrderID(orders), "optimized",
		len(orders), len(result.Schedule), len(result.Summary.Late), result.Summary.HorizonUsed,
	))
	return result, nil
}

// groupByProduct folds a tier's tasks into per-product batches, ordered by
// earliest due and then product name so dispatch is deterministic.
func groupByProduct(tier []*taskState) []*productBatch {
	byProduct := make(map[entities.Product]*productBatch)
	var batches []*productBatch
	for _, st := range tier {
		batch, ok := byProduct[st.task.Product]
		if !ok {
			batch = &productBatch{product: st.task.Product, minDue: st.task.Due}
			byProduct[st.task.Product] = batch
			batches = append(batches, batch)
		}
		batch.quantity += st.remaining
		if st.task.Due < batch.minDue {
			batch.minDue = st.task.Due
		}
		batch.tasks = append(batch.tasks, st)
		batch.addOrderID(st.task.OrderID)
	}

	for _, batch := range batches {
		sort.SliceStable(batch.tasks, func(i, j int) bool {
			if batch.tasks[i].task.Due != batch.tasks[j].task.Due {
				return batch.tasks[i].task.Due < batch.tasks[j].task.Due
			}
			return batch.tasks[i].inputIndex < batch.tasks[j].inputIndex
		})
	}
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].minDue != batches[j].minDue {
			return batches[i].minDue < batches[j].minDue
		}
		return batches[i].product < batches[j].product
	})
	return batches
}

func (b *productBatch) addOrderID(id string) {
	for _, existing := range b.orderIDs {
		if existing == id {
			return
		}
	}
	b.orderIDs = append(b.orderIDs, id)
}

func (b *productBatch) firstOrderID() string {
	if len(b.orderIDs) > 0 {
		return b.orderIDs[0]
	}
	return ""
}

func firstOrderID(orders []entities.Order) string {
	if len(orders) > 0 {
		return orders[0].ID
	}
	return ""
}

// dispatchBatch places one product batch on the park, commits the machine
// state changes, and credits completion times back to the batch's tasks.
func (s *SchedulerService) dispatchBatch(batch *productBatch, working *entities.Park, matrix *entities.SetupMatrix) ([]entities.ScheduleItem, error) {
	if batch.quantity <= 0 {
		// Nothing to produce: the orders are satisfied immediately.
		for _, st := range batch.tasks {
			st.completed = 0
		}
		return nil, nil
	}

	assignments, _ := distributeBatch(batch.product, batch.quantity, working, matrix)
	if len(assignments) == 0 {
		// No machine can take the batch. Skip it and leave the shortfall
		// visible in the output totals rather than failing the whole run.
		s.emit(events.NewBatchSkippedEvent(batch.firstOrderID(), batch.product, batch.quantity,
			fmt.Sprintf("product %s (%d units): %v", batch.product, batch.quantity, ErrNoEligibleMachine)))
		return nil, nil
	}

	var items []entities.ScheduleItem
	machines := make([]string, 0, len(assignments))
	for _, a := range assignments {
		machines = append(machines, a.Machine)
		if a.SetupHours > 0 {
			items = append(items, entities.ScheduleItem{
				Type:     entities.ItemSetup,
				Machine:  a.Machine,
				Start:    a.SetupStart,
				End:      a.SetupStart + a.SetupHours,
				Duration: a.SetupHours,
				Product:  batch.product,
			})
		}
		onTime := a.End <= batch.minDue
		items = append(items, entities.ScheduleItem{
			Type:     entities.ItemProduction,
			Machine:  a.Machine,
			Start:    a.Start,
			End:      a.End,
			Duration: a.End - a.Start,
			Product:  batch.product,
			Quantity: a.Quantity,
			OrderIDs: batch.orderIDs,
			OnTime:   &onTime,
		})

		m, ok := working.Get(a.Machine)
		if !ok {
			return nil, fmt.Errorf("assignment references unknown machine %s", a.Machine)
		}
		m.AvailableAt = a.End
		m.LastProduct = batch.product
	}

	creditCompletions(batch, assignments)
	s.emit(events.NewBatchDistributedEvent(batch.firstOrderID(), batch.product, batch.quantity, machines))
	return items, nil
}

// creditCompletions pours assignment output into the batch's tasks. Tasks
// are already sorted by due time, and assignments are consumed in finishing
// order, so the most urgent task is credited with the earliest output.
func creditCompletions(batch *productBatch, assignments []entities.Assignment) {
	sorted := make([]entities.Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].End < sorted[j].End })

	taskIdx := 0
	for _, a := range sorted {
		available := a.Quantity
		for taskIdx < len(batch.tasks) && available > 0 {
			st := batch.tasks[taskIdx]
			if st.remaining == 0 {
				// Zero demand is satisfied by no assignment at all; the task
				// keeps its immediate completion instead of the batch end.
				taskIdx++
				continue
			}
			if st.remaining <= available {
				available -= st.remaining
				st.remaining = 0
				st.completed = a.End
				taskIdx++
			} else {
				st.remaining -= available
				available = 0
			}
		}
	}
	// Conservation guarantees every task drains; a leftover task means the
	// batch quantity and assignment quantities disagree. Credit the final
	// assignment's end so lateness still surfaces.
	for ; taskIdx < len(batch.tasks); taskIdx++ {
		if batch.tasks[taskIdx].remaining > 0 && len(sorted) > 0 {
			batch.tasks[taskIdx].completed = sorted[len(sorted)-1].End
		}
	}
}

// assemble derives the summary, per-machine grouping, and lateness records
// from the finished dispatch.
func (s *SchedulerService) assemble(orders []entities.Order, states []*taskState, schedule []entities.ScheduleItem, report domainservices.FeasibilityReport) *dto.ScheduleResult {
	completion := make(map[string]float64, len(orders))
	for _, st := range states {
		if st.completed > completion[st.task.OrderID] {
			completion[st.task.OrderID] = st.completed
		}
	}

	summary := entities.Summary{}
	for _, item := range schedule {
		switch item.Type {
		case entities.ItemSetup:
			summary.TotalSetups++
		case entities.ItemProduction:
			summary.TotalProduction++
			summary.QtyClient += item.Quantity
		}
		if item.End > summary.HorizonUsed {
			summary.HorizonUsed = item.End
		}
	}
	summary.TotalHours = summary.HorizonUsed

	for _, order := range orders {
		completed := completion[order.ID]
		if completed > order.Due {
			record := entities.LatenessRecord{
				OrderID:     order.ID,
				HoursLate:   completed - order.Due,
				Cluster:     order.Cluster,
				Due:         order.Due,
				CompletedAt: completed,
			}
			summary.Late = append(summary.Late, record)
			s.emit(events.NewOrderLateEvent(order.ID, record))
		}
	}

	byMachine := make(map[string][]entities.ScheduleItem)
	for _, item := range schedule {
		byMachine[item.Machine] = append(byMachine[item.Machine], item)
	}
	for machine := range byMachine {
		items := byMachine[machine]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Start < items[j].Start })
		byMachine[machine] = items
	}

	if schedule == nil {
		schedule = []entities.ScheduleItem{}
	}
	return &dto.ScheduleResult{
		Schedule:    schedule,
		ByMachine:   byMachine,
		Summary:     summary,
		Feasibility: report,
	}
}

func (s *SchedulerService) emit(event events.Event) {
	if s.events == nil {
		return
	}
	// Event emission is advisory; a failing store must not abort a run.
	_ = s.events.AppendEvent(event.StreamID(), event)
}
