package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

var supplierInfoHeader = []string{
	"partner", "product", "min_qty", "price", "transport_delay", "supplier_delay", "delay",
}

// Loader handles loading vendor offers from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSupplierInfos loads vendor offers from a CSV file
func (l *Loader) LoadSupplierInfos(filename string) ([]*entities.SupplierInfo, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open supplier info file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadSupplierInfos(file)
}

// ReadSupplierInfos parses vendor offers. An empty delay column means the
// delay is derived from the transport and supplier delays; a filled one takes
// precedence and the supplier delay is recomputed from it.
func (l *Loader) ReadSupplierInfos(r io.Reader) ([]*entities.SupplierInfo, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read supplier info CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("supplier info CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, supplierInfoHeader) {
		return nil, fmt.Errorf("supplier info CSV header mismatch. Expected: %v, Got: %v", supplierInfoHeader, header)
	}

	var infos []*entities.SupplierInfo
	for i, record := range records[1:] {
		if len(record) != len(supplierInfoHeader) {
			return nil, fmt.Errorf("supplier info CSV row %d: expected %d columns, got %d", i+2, len(supplierInfoHeader), len(record))
		}

		info, err := parseSupplierInfo(record)
		if err != nil {
			return nil, fmt.Errorf("supplier info CSV row %d: %w", i+2, err)
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// validateHeader checks if the CSV header matches expected format
func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseSupplierInfo(record []string) (*entities.SupplierInfo, error) {
	minQty, err := parseInt("min_qty", record[2], 0)
	if err != nil {
		return nil, err
	}

	price := decimal.Zero
	if s := strings.TrimSpace(record[3]); s != "" {
		price, err = decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", record[3], err)
		}
	}

	transport, err := parseInt("transport_delay", record[4], 0)
	if err != nil {
		return nil, err
	}
	supplier, err := parseInt("supplier_delay", record[5], 0)
	if err != nil {
		return nil, err
	}

	var delay *int
	if s := strings.TrimSpace(record[6]); s != "" {
		d, err := parseInt("delay", s, 0)
		if err != nil {
			return nil, err
		}
		delay = &d
	}

	return entities.NewSupplierInfo(entities.SupplierInfoValues{
		PartnerID:      entities.PartnerID(strings.TrimSpace(record[0])),
		PartNumber:     entities.PartNumber(strings.TrimSpace(record[1])),
		MinQty:         entities.Quantity(minQty),
		Price:          price,
		TransportDelay: transport,
		SupplierDelay:  supplier,
		Delay:          delay,
	})
}

func parseInt(field, s string, fallback int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return v, nil
}
