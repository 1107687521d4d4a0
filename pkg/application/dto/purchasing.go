package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

// CreateSupplierInfoRequest adds a vendor offer to a product. Delay is
// optional; when present it takes precedence over SupplierDelay.
type CreateSupplierInfoRequest struct {
	PartnerID      string          `json:"partner_id" validate:"required"`
	PartNumber     string          `json:"part_number" validate:"required"`
	MinQty         int64           `json:"min_qty" validate:"gte=0"`
	Price          decimal.Decimal `json:"price"`
	TransportDelay int             `json:"transport_delay" validate:"gte=0"`
	SupplierDelay  int             `json:"supplier_delay" validate:"gte=0"`
	Delay          *int            `json:"delay,omitempty" validate:"omitempty,gte=0"`
}

// Values converts the request into entity values
func (r CreateSupplierInfoRequest) Values() entities.SupplierInfoValues {
	return entities.SupplierInfoValues{
		PartnerID:      entities.PartnerID(r.PartnerID),
		PartNumber:     entities.PartNumber(r.PartNumber),
		MinQty:         entities.Quantity(r.MinQty),
		Price:          r.Price,
		TransportDelay: r.TransportDelay,
		SupplierDelay:  r.SupplierDelay,
		Delay:          r.Delay,
	}
}

// UpdateDelaysRequest writes any of the three delay fields. Transport and
// supplier delays are applied first, the combined delay last.
type UpdateDelaysRequest struct {
	TransportDelay *int `json:"transport_delay,omitempty" validate:"omitempty,gte=0"`
	SupplierDelay  *int `json:"supplier_delay,omitempty" validate:"omitempty,gte=0"`
	Delay          *int `json:"delay,omitempty" validate:"omitempty,gte=0"`
}

type OrderLineRequest struct {
	PartNumber string `json:"part_number" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"gt=0"`
}

type CreateOrderRequest struct {
	PartnerID string             `json:"partner_id" validate:"required"`
	DateOrder time.Time          `json:"date_order"`
	Lines     []OrderLineRequest `json:"lines" validate:"dive"`
}

type OrderIDsRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" validate:"required,min=1"`
}

// ConfirmCancelRequest mirrors the wizard context: the selected records and
// the model they belong to.
type ConfirmCancelRequest struct {
	ReasonID    uuid.UUID   `json:"reason_id" validate:"required"`
	ActiveModel string      `json:"active_model"`
	ActiveIDs   []uuid.UUID `json:"active_ids"`
}

type SetStateRequest struct {
	State string `json:"state" validate:"required"`
}

type SetCancelReasonRequest struct {
	ReasonID uuid.UUID `json:"reason_id" validate:"required"`
}

type CancelReasonRequest struct {
	Name string `json:"name" validate:"required"`
}

// OrderView is a purchase order with its computed total
type OrderView struct {
	*entities.PurchaseOrder
	StateLabel  string          `json:"state_label"`
	AmountTotal decimal.Decimal `json:"amount_total"`
}

func NewOrderView(order *entities.PurchaseOrder) OrderView {
	return OrderView{
		PurchaseOrder: order,
		StateLabel:    order.State.Label(),
		AmountTotal:   order.AmountTotal(),
	}
}
