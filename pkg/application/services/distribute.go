package services

import (
	"sort"

	"github.com/barron/scheduler/pkg/domain/entities"
)

const (
	// MinContributionShare drops machines that would carry less than this
	// fraction of a batch; their leftover is redistributed.
	MinContributionShare = 0.10

	// ParallelTolerance accepts a parallel split whose makespan is within
	// this fraction of the single-machine baseline.
	ParallelTolerance = 0.10

	// LargeBatchThreshold forces a parallel split for batches above this
	// size even when the makespan gain is marginal, because a single
	// machine would monopolize the horizon.
	LargeBatchThreshold = entities.Quantity(1000)

	// StartSpreadTolerance excludes machines from the parallel pool when
	// their earliest start lags the best start by more than this fraction
	// of the nominal batch run time.
	StartSpreadTolerance = 0.30
)

// machineOption is one machine's view of a prospective batch: its
// changeover cost and the earliest moment production could begin.
type machineOption struct {
	machine  *entities.Machine
	setup    float64
	earliest float64
}

// distributeBatch plans how to run qty units of product on the park: either
// all on the machine that can finish soonest, or split proportionally across
// several machines so they finish together. Machines are read, never
// mutated; committing an assignment is the dispatcher's job. Splitting
// duplicates the changeover on every participating machine, so the parallel
// candidate only wins for large batches or when it does not materially
// worsen the finish time.
func distributeBatch(product entities.Product, qty entities.Quantity, park *entities.Park, matrix *entities.SetupMatrix) ([]entities.Assignment, float64) {
	machines := park.Machines()
	if len(machines) == 0 || qty <= 0 {
		return nil, 0
	}

	options := make([]machineOption, 0, len(machines))
	for _, m := range machines {
		setup := matrix.Changeover(m.LastProduct, product)
		options = append(options, machineOption{machine: m, setup: setup, earliest: m.AvailableAt + setup})
	}
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].earliest != options[j].earliest {
			return options[i].earliest < options[j].earliest
		}
		if options[i].machine.Capacity != options[j].machine.Capacity {
			return options[i].machine.Capacity > options[j].machine.Capacity
		}
		return options[i].machine.Name < options[j].machine.Name
	})

	baseline := singleAssignment(options[0], qty)
	if len(options) == 1 {
		return []entities.Assignment{baseline}, baseline.End
	}

	parallel, parallelMakespan := parallelAssignments(options, qty)
	if len(parallel) > 1 &&
		(parallelMakespan <= baseline.End*(1+ParallelTolerance) || qty > LargeBatchThreshold) {
		return parallel, parallelMakespan
	}
	return []entities.Assignment{baseline}, baseline.End
}

// singleAssignment runs the whole batch on one machine.
func singleAssignment(opt machineOption, qty entities.Quantity) entities.Assignment {
	end := opt.earliest + float64(qty)/opt.machine.Capacity
	return entities.Assignment{
		Machine:    opt.machine.Name,
		Quantity:   qty,
		Start:      opt.earliest,
		End:        end,
		SetupStart: opt.machine.AvailableAt,
		SetupHours: opt.setup,
	}
}

// parallelAssignments targets a common finish time and hands each eligible
// machine a capacity-proportional share, clipped by its own time budget.
// Options must already be sorted by earliest start. Returns nil when no
// machine clears the minimum contribution, in which case the caller falls
// back to the single-machine baseline.
func parallelAssignments(options []machineOption, qty entities.Quantity) ([]entities.Assignment, float64) {
	minStart := options[0].earliest

	var allCapacity float64
	for _, o := range options {
		allCapacity += o.machine.Capacity
	}
	nominalRun := float64(qty) / allCapacity

	var eligible []machineOption
	for _, o := range options {
		if o.earliest <= minStart+StartSpreadTolerance*nominalRun {
			eligible = append(eligible, o)
		}
	}
	if len(eligible) == 0 {
		return nil, 0
	}

	var totalCapacity float64
	for _, o := range eligible {
		totalCapacity += o.machine.Capacity
	}
	target := minStart + float64(qty)/totalCapacity
	minQty := entities.Quantity(MinContributionShare * float64(qty))

	type allocation struct {
		opt machineOption
		qty entities.Quantity
	}
	var allocations []allocation
	var assigned entities.Quantity
	for _, o := range eligible {
		budget := target - o.earliest
		if budget <= 0 {
			continue
		}
		share := entities.Quantity(float64(qty) * o.machine.Capacity / totalCapacity)
		byTime := entities.Quantity(budget * o.machine.Capacity)
		q := share
		if byTime < q {
			q = byTime
		}
		if q <= 0 || q < minQty {
			continue
		}
		allocations = append(allocations, allocation{opt: o, qty: q})
		assigned += q
	}
	if len(allocations) == 0 {
		return nil, 0
	}

	// Redistribute rounding leftovers and dropped-machine shares
	// proportionally, respecting each machine's budget until the target.
	if residual := qty - assigned; residual > 0 {
		var allocCapacity float64
		for _, a := range allocations {
			allocCapacity += a.opt.machine.Capacity
		}
		for i := range allocations {
			extra := entities.Quantity(float64(residual) * allocations[i].opt.machine.Capacity / allocCapacity)
			room := entities.Quantity((target-allocations[i].opt.earliest)*allocations[i].opt.machine.Capacity) - allocations[i].qty
			if extra > room {
				extra = room
			}
			if extra <= 0 {
				continue
			}
			allocations[i].qty += extra
			assigned += extra
		}
		// Whatever survives both passes lands on the fastest machine. This
		// may push it past the common target by one redistribution pass.
		if rest := qty - assigned; rest > 0 {
			fastest := 0
			for i := range allocations {
				if allocations[i].opt.machine.Capacity > allocations[fastest].opt.machine.Capacity {
					fastest = i
				}
			}
			allocations[fastest].qty += rest
		}
	}

	assignments := make([]entities.Assignment, 0, len(allocations))
	var makespan float64
	for _, a := range allocations {
		end := a.opt.earliest + float64(a.qty)/a.opt.machine.Capacity
		assignments = append(assignments, entities.Assignment{
			Machine:    a.opt.machine.Name,
			Quantity:   a.qty,
			Start:      a.opt.earliest,
			End:        end,
			SetupStart: a.opt.machine.AvailableAt,
			SetupHours: a.opt.setup,
		})
		if end > makespan {
			makespan = end
		}
	}
	return assignments, makespan
}
