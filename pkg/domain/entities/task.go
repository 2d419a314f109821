package entities

// ProductTask is the decomposition unit of scheduling: one product demand
// carved out of an order, carrying the owning order's due time and cluster
// for completion tracking. Tasks are rebuilt on every run and never mutated
// after creation.
type ProductTask struct {
	Product  Product
	Quantity Quantity
	OrderID  string
	Due      float64
	Cluster  int
}
