// Package sourcing picks the vendor offer for a purchase line and derives its
// planned receipt dates from the offer's lead time.
package sourcing

import (
	"fmt"
	"time"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// SelectSeller returns the offer of partner that applies to qty. Among the
// offers whose minimum quantity is reached, the largest price break wins and
// ties go to the lowest price.
func SelectSeller(
	offers []*entities.SupplierInfo,
	partner entities.PartnerID,
	qty entities.Quantity,
) (*entities.SupplierInfo, error) {
	var best *entities.SupplierInfo
	for _, offer := range offers {
		if offer.PartnerID != partner || offer.MinQty > qty {
			continue
		}
		if best == nil ||
			offer.MinQty > best.MinQty ||
			(offer.MinQty == best.MinQty && offer.Price.LessThan(best.Price)) {
			best = offer
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no offer from %s for quantity %d", entities.ErrNotFound, partner, qty)
	}
	return best, nil
}

// PlannedDate is the expected receipt date for an order placed on dateOrder
func PlannedDate(dateOrder time.Time, delay int) time.Time {
	return dateOrder.AddDate(0, 0, delay)
}

// SupplierPlannedDate is the date the vendor must ship for goods to arrive on
// datePlanned.
func SupplierPlannedDate(datePlanned time.Time, transportDelay int) time.Time {
	return datePlanned.AddDate(0, 0, -transportDelay)
}

// NewLine builds a purchase line priced and scheduled from the matching offer
func NewLine(
	offers []*entities.SupplierInfo,
	partner entities.PartnerID,
	partNumber entities.PartNumber,
	qty entities.Quantity,
	dateOrder time.Time,
) (entities.PurchaseOrderLine, error) {
	if qty <= 0 {
		return entities.PurchaseOrderLine{}, fmt.Errorf(
			"%w: quantity must be positive, got %d", entities.ErrValidation, qty)
	}
	seller, err := SelectSeller(offers, partner, qty)
	if err != nil {
		return entities.PurchaseOrderLine{}, fmt.Errorf("product %s: %w", partNumber, err)
	}

	datePlanned := PlannedDate(dateOrder, seller.Delay)
	return entities.PurchaseOrderLine{
		PartNumber:          partNumber,
		Quantity:            qty,
		PriceUnit:           seller.Price,
		DatePlanned:         datePlanned,
		SupplierDatePlanned: SupplierPlannedDate(datePlanned, seller.TransportDelay),
	}, nil
}
