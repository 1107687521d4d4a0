package events

import (
	"github.com/google/uuid"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

const (
	SupplierInfoCreatedEvent      = "supplierinfo.created"
	SupplierInfoDelayChangedEvent = "supplierinfo.delay_changed"

	OrderCreatedEvent       = "order.created"
	OrderStateChangedEvent  = "order.state_changed"
	OrderCancelledEvent     = "order.cancelled"
	OrderReasonUpdatedEvent = "order.cancel_reason_updated"
	OrderArchivedEvent      = "order.archived"
	OrderUnarchivedEvent    = "order.unarchived"
)

// PurchasingEventTypes lists every event type published by the purchasing services
var PurchasingEventTypes = []string{
	SupplierInfoCreatedEvent,
	SupplierInfoDelayChangedEvent,
	OrderCreatedEvent,
	OrderStateChangedEvent,
	OrderCancelledEvent,
	OrderReasonUpdatedEvent,
	OrderArchivedEvent,
	OrderUnarchivedEvent,
}

type SupplierInfoCreated struct {
	SupplierInfo entities.SupplierInfo `json:"supplier_info"`
}

type SupplierInfoDelayChanged struct {
	PartNumber        entities.PartNumber `json:"part_number"`
	PartnerID         entities.PartnerID  `json:"partner_id"`
	OldTransportDelay int                 `json:"old_transport_delay"`
	OldSupplierDelay  int                 `json:"old_supplier_delay"`
	OldDelay          int                 `json:"old_delay"`
	TransportDelay    int                 `json:"transport_delay"`
	SupplierDelay     int                 `json:"supplier_delay"`
	Delay             int                 `json:"delay"`
}

type OrderCreated struct {
	Order entities.PurchaseOrder `json:"order"`
}

type OrderStateChanged struct {
	Name     string              `json:"name"`
	OldState entities.OrderState `json:"old_state"`
	NewState entities.OrderState `json:"new_state"`
}

type OrderCancelled struct {
	Name       string    `json:"name"`
	ReasonID   uuid.UUID `json:"reason_id"`
	ReasonName string    `json:"reason_name"`
}

type OrderReasonUpdated struct {
	Name        string     `json:"name"`
	OldReasonID *uuid.UUID `json:"old_reason_id,omitempty"`
	ReasonID    uuid.UUID  `json:"reason_id"`
}

type OrderActiveToggled struct {
	Name  string              `json:"name"`
	State entities.OrderState `json:"state"`
}

func NewSupplierInfoCreatedEvent(info entities.SupplierInfo) Event {
	return NewEvent(SupplierInfoCreatedEvent, info.ID.String(), SupplierInfoCreated{SupplierInfo: info})
}

func NewSupplierInfoDelayChangedEvent(before, after entities.SupplierInfo) Event {
	return NewEvent(SupplierInfoDelayChangedEvent, after.ID.String(), SupplierInfoDelayChanged{
		PartNumber:        after.PartNumber,
		PartnerID:         after.PartnerID,
		OldTransportDelay: before.TransportDelay,
		OldSupplierDelay:  before.SupplierDelay,
		OldDelay:          before.Delay,
		TransportDelay:    after.TransportDelay,
		SupplierDelay:     after.SupplierDelay,
		Delay:             after.Delay,
	})
}

func NewOrderCreatedEvent(order entities.PurchaseOrder) Event {
	return NewEvent(OrderCreatedEvent, order.ID.String(), OrderCreated{Order: order})
}

func NewOrderStateChangedEvent(order entities.PurchaseOrder, oldState entities.OrderState) Event {
	return NewEvent(OrderStateChangedEvent, order.ID.String(), OrderStateChanged{
		Name:     order.Name,
		OldState: oldState,
		NewState: order.State,
	})
}

func NewOrderCancelledEvent(order entities.PurchaseOrder, reason entities.CancelReason) Event {
	return NewEvent(OrderCancelledEvent, order.ID.String(), OrderCancelled{
		Name:       order.Name,
		ReasonID:   reason.ID,
		ReasonName: reason.Name,
	})
}

func NewOrderReasonUpdatedEvent(order entities.PurchaseOrder, oldReason *uuid.UUID) Event {
	return NewEvent(OrderReasonUpdatedEvent, order.ID.String(), OrderReasonUpdated{
		Name:        order.Name,
		OldReasonID: oldReason,
		ReasonID:    *order.CancelReasonID,
	})
}

func NewOrderActiveToggledEvent(order entities.PurchaseOrder) Event {
	eventType := OrderUnarchivedEvent
	if !order.Active {
		eventType = OrderArchivedEvent
	}
	return NewEvent(eventType, order.ID.String(), OrderActiveToggled{Name: order.Name, State: order.State})
}
