package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState is the workflow state of a purchase order
type OrderState string

const (
	StateDraft     OrderState = "draft"
	StateSent      OrderState = "sent"
	StateToApprove OrderState = "to approve"
	StatePurchase  OrderState = "purchase"
	StateDone      OrderState = "done"
	StateCancel    OrderState = "cancel"
)

// Label returns the name shown to users for the state
func (s OrderState) Label() string {
	switch s {
	case StateDraft:
		return "RFQ"
	case StateSent:
		return "RFQ Sent"
	case StateToApprove:
		return "To Approve"
	case StatePurchase:
		return "Purchase Order"
	case StateDone:
		return "Locked"
	case StateCancel:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// ParseOrderState validates a state name
func ParseOrderState(s string) (OrderState, error) {
	switch state := OrderState(s); state {
	case StateDraft, StateSent, StateToApprove, StatePurchase, StateDone, StateCancel:
		return state, nil
	}
	return "", fmt.Errorf("%w: unknown purchase order state %q", ErrValidation, s)
}

// ErrArchivedStateChange is returned when the state of an archived order is written
var ErrArchivedStateChange = fmt.Errorf(
	"%w: This record is currently archived and cannot have its state modified. "+
		"Please unarchive the record to make changes.",
	ErrUserError,
)

// PurchaseOrderLine is a product line of a purchase order
type PurchaseOrderLine struct {
	PartNumber          PartNumber      `json:"part_number"`
	Quantity            Quantity        `json:"quantity"`
	PriceUnit           decimal.Decimal `json:"price_unit"`
	DatePlanned         time.Time       `json:"date_planned"`
	SupplierDatePlanned time.Time       `json:"supplier_date_planned"`
}

// Subtotal returns quantity times unit price
func (l PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.PriceUnit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PurchaseOrder represents a request for quotation or a confirmed purchase
type PurchaseOrder struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	PartnerID      PartnerID           `json:"partner_id"`
	State          OrderState          `json:"state"`
	DateOrder      time.Time           `json:"date_order"`
	Active         bool                `json:"active"`
	CancelReasonID *uuid.UUID          `json:"cancel_reason_id,omitempty"`
	Lines          []PurchaseOrderLine `json:"lines"`
}

// NewPurchaseOrder creates a validated draft PurchaseOrder
func NewPurchaseOrder(name string, partnerID PartnerID, dateOrder time.Time) (*PurchaseOrder, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: order name cannot be empty", ErrValidation)
	}
	if partnerID == "" {
		return nil, fmt.Errorf("%w: partner cannot be empty", ErrValidation)
	}
	if dateOrder.IsZero() {
		dateOrder = time.Now().UTC()
	}
	return &PurchaseOrder{
		ID:        uuid.New(),
		Name:      name,
		PartnerID: partnerID,
		State:     StateDraft,
		DateOrder: dateOrder,
		Active:    true,
	}, nil
}

// IsLockedOrCanceled reports whether the order is done or cancelled
func (o *PurchaseOrder) IsLockedOrCanceled() bool {
	return o.State == StateDone || o.State == StateCancel
}

// SetState writes the workflow state. Archived orders refuse any state write.
func (o *PurchaseOrder) SetState(state OrderState) error {
	if _, err := ParseOrderState(string(state)); err != nil {
		return err
	}
	if !o.Active {
		return ErrArchivedStateChange
	}
	o.State = state
	return nil
}

// Cancel records the reason and moves the order to the cancel state
func (o *PurchaseOrder) Cancel(reasonID uuid.UUID) error {
	if err := o.SetState(StateCancel); err != nil {
		return err
	}
	o.CancelReasonID = &reasonID
	return nil
}

// AmountTotal sums the line subtotals
func (o *PurchaseOrder) AmountTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
