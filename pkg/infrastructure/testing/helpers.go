// Package testing builds purchasing scenarios backed by the in-memory repositories
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/infrastructure/repositories/memory"
)

// Scenario holds the repositories and records of a prepared test scenario
type Scenario struct {
	SupplierInfos  *memory.SupplierInfoRepository
	PurchaseOrders *memory.PurchaseOrderRepository
	CancelReasons  *memory.CancelReasonRepository

	Products []*entities.Product
	Reasons  []*entities.CancelReason
}

// DateOrder is the order date used by the scenario
var DateOrder = time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)

// BuildPurchasingTestData builds a fastener catalogue with two vendors and the
// usual cancellation reasons. ACME delivers BOLT with a supplier delay of 6 and
// a transport delay of 4 days at 10 per unit.
func BuildPurchasingTestData() *Scenario {
	s := &Scenario{
		SupplierInfos:  memory.NewSupplierInfoRepository(8),
		PurchaseOrders: memory.NewPurchaseOrderRepository(),
		CancelReasons:  memory.NewCancelReasonRepository(),
	}

	type offer struct {
		partner             entities.PartnerID
		minQty              entities.Quantity
		price               string
		transport, supplier int
	}
	catalogue := []struct {
		part, description string
		offers            []offer
	}{
		{"BOLT", "Hex bolt M8", []offer{
			{"ACME", 0, "10", 4, 6},
			{"ACME", 100, "8.5", 4, 10},
			{"GLOBEX", 0, "9", 12, 2},
		}},
		{"NUT", "Hex nut M8", []offer{
			{"ACME", 0, "2", 4, 1},
		}},
		{"WASHER", "Flat washer M8", []offer{
			{"GLOBEX", 50, "0.5", 12, 3},
		}},
	}

	var infos []*entities.SupplierInfo
	for _, c := range catalogue {
		product, err := entities.NewProduct(entities.PartNumber(c.part), c.description, "EA")
		if err != nil {
			panic(err)
		}
		for _, o := range c.offers {
			info, err := product.AddSeller(entities.SupplierInfoValues{
				PartnerID:      o.partner,
				MinQty:         o.minQty,
				Price:          decimal.RequireFromString(o.price),
				TransportDelay: o.transport,
				SupplierDelay:  o.supplier,
			})
			if err != nil {
				panic(err)
			}
			infos = append(infos, info)
		}
		s.Products = append(s.Products, product)
	}
	if err := s.SupplierInfos.LoadSupplierInfos(infos); err != nil {
		panic(err)
	}

	for _, name := range []string{"Price too high", "Vendor cannot deliver on time", "Duplicate order"} {
		reason, err := entities.NewCancelReason(name)
		if err != nil {
			panic(err)
		}
		s.Reasons = append(s.Reasons, reason)
	}
	if err := s.CancelReasons.LoadReasons(s.Reasons); err != nil {
		panic(err)
	}

	return s
}
