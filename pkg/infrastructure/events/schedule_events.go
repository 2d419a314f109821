package events

import (
	"github.com/barron/scheduler/pkg/domain/entities"
)

const (
	ScheduleRunCompletedEvent = "schedule.run.completed"
	ScheduleRunFailedEvent    = "schedule.run.failed"

	OrderLateEvent = "order.late"

	BatchDistributedEvent = "batch.distributed"
	BatchSkippedEvent     = "batch.skipped"
)

type ScheduleRunCompleted struct {
	RunID      string  `json:"run_id"`
	Mode       string  `json:"mode"`
	Orders     int     `json:"orders"`
	Items      int     `json:"items"`
	LateOrders int     `json:"late_orders"`
	Horizon    float64 `json:"horizon"`
}

type ScheduleRunFailed struct {
	RunID  string `json:"run_id"`
	Mode   string `json:"mode"`
	Reason string `json:"reason"`
}

type OrderLate struct {
	Record entities.LatenessRecord `json:"record"`
}

type BatchDistributed struct {
	Product  entities.Product  `json:"product"`
	Quantity entities.Quantity `json:"quantity"`
	Machines []string          `json:"machines"`
}

type BatchSkipped struct {
	Product  entities.Product  `json:"product"`
	Quantity entities.Quantity `json:"quantity"`
	Reason   string            `json:"reason"`
}

func NewScheduleRunCompletedEvent(runID, mode string, orders, items, lateOrders int, horizon float64) Event {
	return NewEvent(ScheduleRunCompletedEvent, runID, ScheduleRunCompleted{
		RunID:      runID,
		Mode:       mode,
		Orders:     orders,
		Items:      items,
		LateOrders: lateOrders,
		Horizon:    horizon,
	})
}

func NewScheduleRunFailedEvent(runID, mode, reason string) Event {
	return NewEvent(ScheduleRunFailedEvent, runID, ScheduleRunFailed{
		RunID:  runID,
		Mode:   mode,
		Reason: reason,
	})
}

func NewOrderLateEvent(runID string, record entities.LatenessRecord) Event {
	return NewEvent(OrderLateEvent, runID, OrderLate{Record: record})
}

func NewBatchDistributedEvent(runID string, product entities.Product, qty entities.Quantity, machines []string) Event {
	return NewEvent(BatchDistributedEvent, runID, BatchDistributed{
		Product:  product,
		Quantity: qty,
		Machines: machines,
	})
}

func NewBatchSkippedEvent(runID string, product entities.Product, qty entities.Quantity, reason string) Event {
	return NewEvent(BatchSkippedEvent, runID, BatchSkipped{
		Product:  product,
		Quantity: qty,
		Reason:   reason,
	})
}
