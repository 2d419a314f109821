package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/barron/scheduler/pkg/domain/entities"
)

// Loader handles loading scheduling data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadOrders loads production orders from a CSV file. The products column
// holds multi-product demand as "A:200;B:300"; legacy single-product rows
// leave it empty and use the format/qty columns instead.
func (l *Loader) LoadOrders(filename string) ([]entities.Order, error) {
	records, err := readAll(filename, "orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "due", "cluster", "format", "qty", "products"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var orders []entities.Order
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// LoadMachines loads the machine park from a CSV file, in row order.
func (l *Loader) LoadMachines(filename string) (*entities.Park, error) {
	records, err := readAll(filename, "machines")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"name", "capacity", "available_at", "last_product"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("machines CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	park := entities.NewPark()
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("machines CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		capacity, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("machines CSV row %d: invalid capacity: %s", i+2, record[1])
		}
		availableAt := 0.0
		if record[2] != "" {
			availableAt, err = strconv.ParseFloat(record[2], 64)
			if err != nil {
				return nil, fmt.Errorf("machines CSV row %d: invalid available_at: %s", i+2, record[2])
			}
		}

		machine, err := entities.NewMachine(record[0], capacity, availableAt, entities.Product(record[3]))
		if err != nil {
			return nil, fmt.Errorf("machines CSV row %d: %w", i+2, err)
		}
		park.Add(machine)
	}
	return park, nil
}

// LoadSetupMatrix loads the changeover matrix from a CSV file.
func (l *Loader) LoadSetupMatrix(filename string, defaultHours float64) (*entities.SetupMatrix, error) {
	records, err := readAll(filename, "setups")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"from_product", "to_product", "hours"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("setups CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	matrix := entities.NewSetupMatrix(defaultHours)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("setups CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		hours, err := strconv.ParseFloat(record[2], 64)
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("setups CSV row %d: invalid hours: %s", i+2, record[2])
		}
		matrix.Set(entities.Product(record[0]), entities.Product(record[1]), hours)
	}
	return matrix, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseOrder(record []string) (entities.Order, error) {
	id := record[0]

	due, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid due: %s", record[1])
	}
	cluster, err := strconv.Atoi(record[2])
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid cluster: %s", record[2])
	}

	order := entities.Order{ID: id, Due: due, Cluster: cluster}

	if record[5] != "" {
		products, err := parseProducts(record[5])
		if err != nil {
			return entities.Order{}, err
		}
		order.Products = products
		return order, nil
	}

	if record[3] == "" {
		return entities.Order{}, fmt.Errorf("order %s: %w", id, entities.ErrInvalidOrder)
	}
	qty, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return entities.Order{}, fmt.Errorf("invalid qty: %s", record[4])
	}
	order.Format = entities.Product(record[3])
	order.Qty = entities.Quantity(qty)
	return order, nil
}

func parseProducts(s string) (map[entities.Product]entities.Quantity, error) {
	products := make(map[entities.Product]entities.Quantity)
	for _, pair := range strings.Split(s, ";") {
		name, qtyStr, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid products entry: %s (expected NAME:QTY)", pair)
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("invalid products quantity: %s", qtyStr)
		}
		products[entities.Product(name)] = entities.Quantity(qty)
	}
	return products, nil
}
