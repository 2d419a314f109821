package services

import (
	"fmt"

	"github.com/barron/scheduler/pkg/domain/entities"
)

// DecomposeOrders expands every order into one ProductTask per demanded
// product, copying the owning order's due time and cluster for completion
// tracking. Products are walked in sorted name order so the resulting task
// sequence is deterministic. An order with neither a product map nor a
// legacy format/quantity pair aborts the run before any scheduling.
func DecomposeOrders(orders []entities.Order) ([]entities.ProductTask, error) {
	var tasks []entities.ProductTask
	for i := range orders {
		order := &orders[i]
		demands, err := order.Demands()
		if err != nil {
			return nil, fmt.Errorf("decomposing orders: %w", err)
		}
		products, err := order.SortedProducts()
		if err != nil {
			return nil, fmt.Errorf("decomposing orders: %w", err)
		}
		for _, product := range products {
			tasks = append(tasks, entities.ProductTask{
				Product:  product,
				Quantity: demands[product],
				OrderID:  order.ID,
				Due:      order.Due,
				Cluster:  order.Cluster,
			})
		}
	}
	return tasks, nil
}
