package entities

// ItemType discriminates the interval kinds emitted by the dispatchers.
type ItemType string

const (
	// ItemSetup is a changeover interval on one machine.
	ItemSetup ItemType = "SETUP"
	// ItemProduction is a product batch interval emitted by the two-tier
	// dispatcher, possibly serving several orders at once.
	ItemProduction ItemType = "PRODUCTION"
	// ItemWorkOrder is the legacy single-order interval ("OT" on the wire).
	ItemWorkOrder ItemType = "OT"
)

// ScheduleItem is one timed interval of the dispatch. Items are appended in
// dispatch order and never mutated afterwards. Field names on the wire
// follow the original scheduling API.
type ScheduleItem struct {
	Type     ItemType `json:"type"`
	Machine  string   `json:"machine"`
	Start    float64  `json:"start"`
	End      float64  `json:"end"`
	Duration float64  `json:"duration"`

	// PRODUCTION fields.
	Product  Product  `json:"product,omitempty"`
	Quantity Quantity `json:"quantity,omitempty"`
	OrderIDs []string `json:"ot_ids,omitempty"`

	// Legacy OT fields.
	OrderID   string   `json:"id,omitempty"`
	Due       float64  `json:"due,omitempty"`
	QtyClient Quantity `json:"qty_cliente,omitempty"`
	QtyExtra  Quantity `json:"qty_extra,omitempty"`

	OnTime *bool `json:"on_time,omitempty"`

	// Wall-clock projections, filled by the calendar annotator.
	StartClock string `json:"start_datetime_str,omitempty"`
	EndClock   string `json:"end_datetime_str,omitempty"`
}

// Assignment is one machine's share of a distributed product batch, as
// produced by the parallel-distribution heuristic. Start is the production
// start, after any changeover beginning at SetupStart.
type Assignment struct {
	Machine    string
	Quantity   Quantity
	Start      float64
	End        float64
	SetupStart float64
	SetupHours float64
}

// LatenessRecord reports an order whose completion exceeded its due time.
type LatenessRecord struct {
	OrderID     string  `json:"ot_id"`
	HoursLate   float64 `json:"atraso_horas"`
	Cluster     int     `json:"cluster"`
	Due         float64 `json:"due"`
	CompletedAt float64 `json:"completed_at"`
}

// Summary aggregates a finished dispatch. It is derived purely from the
// schedule items and per-order completion tracking.
type Summary struct {
	TotalProduction int              `json:"total_ots"`
	TotalSetups     int              `json:"total_setups"`
	TotalHours      float64          `json:"total_horas"`
	QtyClient       Quantity         `json:"qty_total_cliente"`
	QtyExtra        Quantity         `json:"qty_total_extra"`
	Late            []LatenessRecord `json:"atrasos"`
	HorizonUsed     float64          `json:"horizonte_usado"`
}
