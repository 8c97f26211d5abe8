package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/domain/entities"
)

// Loader handles loading catalog and stock data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadVariants loads product variants from a CSV file
func (l *Loader) LoadVariants(filename string) ([]*entities.Variant, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open variants file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read variants CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("variants CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"sku", "description", "manufacturer", "unit", "feet_per_layer", "layers_per_pallet", "unit_price"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("variants CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var variants []*entities.Variant
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("variants CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		variant, err := parseVariant(record)
		if err != nil {
			return nil, fmt.Errorf("variants CSV row %d: %w", i+2, err)
		}

		variants = append(variants, &variant)
	}

	return variants, nil
}

// LoadStockLevels loads stock levels from a CSV file. A header-only file is
// valid and yields no levels, since variants without a stock record project
// from zero.
func (l *Loader) LoadStockLevels(filename string) ([]*entities.StockLevel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open stock file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read stock CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("stock CSV must have a header row")
	}

	// Validate header
	expectedHeader := []string{"sku", "quantity", "pallets", "layers"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("stock CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var levels []*entities.StockLevel
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("stock CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		level, err := parseStockLevel(record)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}

		levels = append(levels, &level)
	}

	return levels, nil
}

// LoadChanges loads stock changes from a CSV file
func (l *Loader) LoadChanges(filename string) ([]*entities.StockChange, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open changes file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read changes CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("changes CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"sku", "quantity", "pallets", "layers", "pallets_authoritative"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("changes CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var changes []*entities.StockChange
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("changes CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		change, err := parseStockChange(record)
		if err != nil {
			return nil, fmt.Errorf("changes CSV row %d: %w", i+2, err)
		}

		changes = append(changes, &change)
	}

	return changes, nil
}

// Helper functions for parsing CSV records

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

func parseVariant(record []string) (entities.Variant, error) {
	sku := entities.SKU(strings.TrimSpace(record[0]))
	if sku == "" {
		return entities.Variant{}, fmt.Errorf("sku cannot be empty")
	}

	description := record[1]
	manufacturer := record[2]
	unit := parseUnit(record[3])

	feetPerLayer, err := parseOptionalDecimal(record[4])
	if err != nil {
		return entities.Variant{}, fmt.Errorf("invalid feet_per_layer: %s", record[4])
	}

	layersPerPallet, err := parseOptionalInt(record[5])
	if err != nil {
		return entities.Variant{}, fmt.Errorf("invalid layers_per_pallet: %s", record[5])
	}

	unitPrice, err := parseOptionalDecimal(record[6])
	if err != nil {
		return entities.Variant{}, fmt.Errorf("invalid unit_price: %s", record[6])
	}

	return entities.Variant{
		SKU:              sku,
		Description:      description,
		ManufacturerCode: manufacturer,
		Unit:             unit,
		FeetPerLayer:     feetPerLayer,
		LayersPerPallet:  layersPerPallet,
		UnitPrice:        unitPrice,
	}, nil
}

func parseStockLevel(record []string) (entities.StockLevel, error) {
	sku := entities.SKU(strings.TrimSpace(record[0]))
	if sku == "" {
		return entities.StockLevel{}, fmt.Errorf("sku cannot be empty")
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid quantity: %s", record[1])
	}

	pallets, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid pallets: %s", record[2])
	}

	layers, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
	if err != nil {
		return entities.StockLevel{}, fmt.Errorf("invalid layers: %s", record[3])
	}

	return entities.StockLevel{
		SKU:      sku,
		Quantity: quantity,
		Pallets:  pallets,
		Layers:   layers,
	}, nil
}

func parseStockChange(record []string) (entities.StockChange, error) {
	sku := entities.SKU(strings.TrimSpace(record[0]))
	if sku == "" {
		return entities.StockChange{}, fmt.Errorf("sku cannot be empty")
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return entities.StockChange{}, fmt.Errorf("invalid quantity: %s", record[1])
	}

	pallets, err := parseOptionalInt(record[2])
	if err != nil {
		return entities.StockChange{}, fmt.Errorf("invalid pallets: %s", record[2])
	}

	layers, err := parseOptionalInt(record[3])
	if err != nil {
		return entities.StockChange{}, fmt.Errorf("invalid layers: %s", record[3])
	}

	authoritative, err := strconv.ParseBool(strings.TrimSpace(record[4]))
	if err != nil {
		return entities.StockChange{}, fmt.Errorf("invalid pallets_authoritative: %s (expected true or false)", record[4])
	}

	return entities.StockChange{
		SKU:                  sku,
		Quantity:             quantity,
		Pallets:              pallets,
		Layers:               layers,
		PalletsAuthoritative: authoritative,
	}, nil
}

// parseUnit canonicalizes the layered unit labels so breakdown handling does
// not depend on how a spreadsheet capitalized them. Unrecognized units pass
// through verbatim and are treated as simple units.
func parseUnit(s string) entities.UnitOfMeasure {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "square feet":
		return entities.UnitSquareFeet
	case "linear feet":
		return entities.UnitLinearFeet
	case "each":
		return entities.UnitEach
	case "box":
		return entities.UnitBox
	case "roll":
		return entities.UnitRoll
	default:
		return entities.UnitOfMeasure(trimmed)
	}
}

// parseOptionalDecimal treats an empty cell as zero
func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, nil
	}
	return decimal.NewFromString(trimmed)
}

// parseOptionalInt treats an empty cell as zero
func parseOptionalInt(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.ParseInt(trimmed, 10, 64)
}
