package services

import (
	"context"
	"sort"

	"github.com/barron/scheduler/pkg/application/dto"
	"github.com/barron/scheduler/pkg/domain/entities"
	domainservices "github.com/barron/scheduler/pkg/domain/services"
	"github.com/barron/scheduler/pkg/infrastructure/events"
)

// LegacyService is the original greedy dispatcher: orders are ranked by
// priority score and placed whole, one at a time, on the machine that
// finishes them soonest. It only accepts single-product orders, and it may
// produce ahead of demand when a future order for the same product makes the
// saved changeover worth the holding cost.
type LegacyService struct {
	config Config
	events events.EventStore
}

// NewLegacyService creates a legacy dispatcher. Pass nil for store to
// disable event emission.
func NewLegacyService(config Config, store events.EventStore) *LegacyService {
	return &LegacyService{config: config, events: store}
}

// Schedule dispatches the orders in priority order. The input park and
// matrix are never mutated. Any multi-product order aborts the run before
// the first placement.
func (s *LegacyService) Schedule(ctx context.Context, orders []entities.Order, park *entities.Park, matrix *entities.SetupMatrix) (*dto.ScheduleResult, error) {
	type demand struct {
		order   entities.Order
		product entities.Product
		qty     entities.Quantity
	}

	sorted := domainservices.SortByPriority(orders)
	demands := make([]demand, 0, len(sorted))
	var tasks []entities.ProductTask
	for _, order := range sorted {
		product, qty, err := order.LegacyDemand()
		if err != nil {
			return nil, err
		}
		demands = append(demands, demand{order: order, product: product, qty: qty})
		tasks = append(tasks, entities.ProductTask{
			Product:  product,
			Quantity: qty,
			OrderID:  order.ID,
			Due:      order.Due,
			Cluster:  order.Cluster,
		})
	}

	working := park.Clone()
	report := domainservices.CheckFeasibility(tasks, working, s.config.DefaultSetupHours)

	var schedule []entities.ScheduleItem
	completion := make(map[string]float64, len(orders))
	var summary entities.Summary

	for _, d := range demands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		future := domainservices.FutureSameProduct(d.order, orders, s.config.LookaheadHorizonHours)
		extra := domainservices.AnticipatedQuantity(future, s.config.LookaheadHorizonHours, s.config.UnitHoldingCost)
		total := d.qty + extra

		best, setup, err := pickFastestMachine(working, matrix, d.product, total)
		if err != nil {
			// No machine can take the order. Skip it; the shortfall shows up
			// in the output totals.
			s.emit(events.NewBatchSkippedEvent(d.order.ID, d.product, total, err.Error()))
			continue
		}

		start := best.AvailableAt + setup
		end := start + float64(total)/best.Capacity
		if setup > 0 {
			schedule = append(schedule, entities.ScheduleItem{
				Type:     entities.ItemSetup,
				Machine:  best.Name,
				Start:    best.AvailableAt,
				End:      start,
				Duration: setup,
				Product:  d.product,
			})
			summary.TotalSetups++
		}
		onTime := end <= d.order.Due
		schedule = append(schedule, entities.ScheduleItem{
			Type:      entities.ItemWorkOrder,
			Machine:   best.Name,
			Start:     start,
			End:       end,
			Duration:  end - start,
			Product:   d.product,
			Quantity:  total,
			OrderID:   d.order.ID,
			Due:       d.order.Due,
			QtyClient: d.qty,
			QtyExtra:  extra,
			OnTime:    &onTime,
		})
		summary.TotalProduction++
		summary.QtyClient += d.qty
		summary.QtyExtra += extra

		best.AvailableAt = end
		best.LastProduct = d.product
		completion[d.order.ID] = end
		if end > summary.HorizonUsed {
			summary.HorizonUsed = end
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
	result := &dto.ScheduleResult{
		Schedule:    schedule,
		ByMachine:   byMachine,
		Summary:     summary,
		Feasibility: report,
	}
	s.emit(events.NewScheduleRunCompletedEvent(
		firstOrderID(orders), "legacy",
		len(orders), len(result.Schedule), len(summary.Late), summary.HorizonUsed,
	))
	return result, nil
}

// pickFastestMachine returns the machine that would finish the quantity
// soonest, changeover included. Ties keep the first machine in park order.
func pickFastestMachine(park *entities.Park, matrix *entities.SetupMatrix, product entities.Product, qty entities.Quantity) (*entities.Machine, float64, error) {
	var best *entities.Machine
	var bestSetup, bestFinish float64
	for _, m := range park.Machines() {
		setup := matrix.Changeover(m.LastProduct, product)
		finish := m.AvailableAt + setup + float64(qty)/m.Capacity
		if best == nil || finish < bestFinish {
			best, bestSetup, bestFinish = m, setup, finish
		}
	}
	if best == nil {
		return nil, 0, ErrNoEligibleMachine
	}
	return best, bestSetup, nil
}

func (s *LegacyService) emit(event events.Event) {
	if s.events == nil {
		return
	}
	_ = s.events.AppendEvent(event.StreamID(), event)
}
