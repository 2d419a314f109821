package entities

import (
	"errors"
	"fmt"
	"sort"
)

// Product identifies a product type (format) a machine can be tooled for
type Product string

// Quantity represents an integer quantity value for discrete production units
type Quantity int64

// ErrInvalidOrder is returned when an order carries neither a product map
// nor a legacy format/quantity pair.
var ErrInvalidOrder = errors.New("order has no product demands")

// Order represents a production work order. Modern orders request one or
// more products via the Products map; legacy orders use the single
// Format/Qty pair. Orders are immutable inputs to the scheduler.
type Order struct {
	ID       string               `json:"id"`
	Due      float64              `json:"due"` // hours from the schedule origin
	Cluster  int                  `json:"cluster"`
	Products map[Product]Quantity `json:"products,omitempty"`

	// Legacy single-product representation.
	Format Product  `json:"format,omitempty"`
	Qty    Quantity `json:"qty,omitempty"`
}

// NewOrder creates a validated multi-product order.
func NewOrder(id string, due float64, cluster int, products map[Product]Quantity) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if due <= 0 {
		return nil, fmt.Errorf("order %s: due must be positive, got %v", id, due)
	}
	if cluster <= 0 {
		return nil, fmt.Errorf("order %s: cluster must be positive, got %d", id, cluster)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("order %s: %w", id, ErrInvalidOrder)
	}
	for product, qty := range products {
		if qty < 0 {
			return nil, fmt.Errorf("order %s: quantity for %s must be non-negative, got %d", id, product, qty)
		}
	}
	return &Order{ID: id, Due: due, Cluster: cluster, Products: products}, nil
}

// Demands normalizes the order into its product demand map. Legacy orders
// collapse to a one-entry map. Orders with neither representation fail
// with ErrInvalidOrder.
func (o *Order) Demands() (map[Product]Quantity, error) {
	if len(o.Products) > 0 {
		return o.Products, nil
	}
	if o.Format != "" {
		return map[Product]Quantity{o.Format: o.Qty}, nil
	}
	return nil, fmt.Errorf("order %s: %w", o.ID, ErrInvalidOrder)
}

// SortedProducts returns the demanded products in name order. Dispatch order
// must never depend on map iteration order.
func (o *Order) SortedProducts() ([]Product, error) {
	demands, err := o.Demands()
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(demands))
	for product := range demands {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i] < products[j] })
	return products, nil
}

// TotalQuantity sums the requested quantity across all demanded products.
func (o *Order) TotalQuantity() Quantity {
	demands, err := o.Demands()
	if err != nil {
		return 0
	}
	var total Quantity
	for _, qty := range demands {
		total += qty
	}
	return total
}

// LegacyDemand resolves the order to a single (product, quantity) pair for
// the legacy dispatcher. Multi-product orders cannot travel the legacy path.
func (o *Order) LegacyDemand() (Product, Quantity, error) {
	if o.Format != "" {
		return o.Format, o.Qty, nil
	}
	if len(o.Products) == 1 {
		for product, qty := range o.Products {
			return product, qty, nil
		}
	}
	if len(o.Products) > 1 {
		return "", 0, fmt.Errorf("order %s: legacy dispatch requires a single product, got %d", o.ID, len(o.Products))
	}
	return "", 0, fmt.Errorf("order %s: %w", o.ID, ErrInvalidOrder)
}
