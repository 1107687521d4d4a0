package sourcing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

func offer(t *testing.T, partner entities.PartnerID, minQty entities.Quantity, price string, transport, supplier int) *entities.SupplierInfo {
	t.Helper()
	info, err := entities.NewSupplierInfo(entities.SupplierInfoValues{
		PartnerID:      partner,
		PartNumber:     "PRODUCT_A",
		MinQty:         minQty,
		Price:          decimal.RequireFromString(price),
		TransportDelay: transport,
		SupplierDelay:  supplier,
	})
	require.NoError(t, err)
	return info
}

func TestNewLine_SupplierDatePlanned(t *testing.T) {
	offers := []*entities.SupplierInfo{offer(t, "vendor1", 1, "10", 4, 6)}
	dateOrder := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)

	line, err := NewLine(offers, "vendor1", "PRODUCT_A", 1, dateOrder)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10).Equal(line.PriceUnit))
	assert.Equal(t, "2020-08-20", line.DatePlanned.Format("2006-01-02"))
	assert.Equal(t, "2020-08-16", line.SupplierDatePlanned.Format("2006-01-02"))
}

func TestNewLine_Errors(t *testing.T) {
	offers := []*entities.SupplierInfo{offer(t, "vendor1", 5, "10", 0, 1)}
	dateOrder := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewLine(offers, "vendor1", "PRODUCT_A", 0, dateOrder)
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = NewLine(offers, "vendor1", "PRODUCT_A", 2, dateOrder)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = NewLine(offers, "vendor2", "PRODUCT_A", 10, dateOrder)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestSelectSeller(t *testing.T) {
	small := offer(t, "vendor1", 1, "10", 0, 3)
	bulk := offer(t, "vendor1", 100, "8", 0, 5)
	bulkCheaper := offer(t, "vendor1", 100, "7.5", 0, 9)
	other := offer(t, "vendor2", 1, "1", 0, 1)
	offers := []*entities.SupplierInfo{small, bulk, bulkCheaper, other}

	testCases := []struct {
		name     string
		partner  entities.PartnerID
		qty      entities.Quantity
		expected *entities.SupplierInfo
	}{
		{"below price break", "vendor1", 10, small},
		{"price break reached", "vendor1", 100, bulkCheaper},
		{"other vendor", "vendor2", 1, other},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectSeller(offers, tc.partner, tc.qty)
			require.NoError(t, err)
			assert.Same(t, tc.expected, got)
		})
	}
}
