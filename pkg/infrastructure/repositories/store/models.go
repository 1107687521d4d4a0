package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/purchasing/pkg/domain/entities"
)

type supplierInfoModel struct {
	ID             string          `gorm:"primaryKey;type:TEXT"`
	PartnerID      string          `gorm:"not null;index"`
	PartNumber     string          `gorm:"not null;index"`
	MinQty         int64           `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(16,4);not null"`
	TransportDelay int             `gorm:"not null"`
	SupplierDelay  int             `gorm:"not null"`
	Delay          int             `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (supplierInfoModel) TableName() string {
	return "supplier_infos"
}

func newSupplierInfoModel(info *entities.SupplierInfo) supplierInfoModel {
	return supplierInfoModel{
		ID:             info.ID.String(),
		PartnerID:      string(info.PartnerID),
		PartNumber:     string(info.PartNumber),
		MinQty:         int64(info.MinQty),
		Price:          info.Price,
		TransportDelay: info.TransportDelay,
		SupplierDelay:  info.SupplierDelay,
		Delay:          info.Delay,
	}
}

func (m supplierInfoModel) toEntity() (*entities.SupplierInfo, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &entities.SupplierInfo{
		ID:             id,
		PartnerID:      entities.PartnerID(m.PartnerID),
		PartNumber:     entities.PartNumber(m.PartNumber),
		MinQty:         entities.Quantity(m.MinQty),
		Price:          m.Price,
		TransportDelay: m.TransportDelay,
		SupplierDelay:  m.SupplierDelay,
		Delay:          m.Delay,
	}, nil
}

type cancelReasonModel struct {
	ID   string `gorm:"primaryKey;type:TEXT"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (cancelReasonModel) TableName() string {
	return "purchase_order_cancel_reasons"
}

type purchaseOrderModel struct {
	ID             string `gorm:"primaryKey;type:TEXT"`
	Name           string `gorm:"not null;uniqueIndex"`
	PartnerID      string `gorm:"not null;index"`
	State          string `gorm:"not null;index"`
	DateOrder      time.Time
	Active         bool                     `gorm:"not null"`
	CancelReasonID *string                  `gorm:"index"`
	Lines          []purchaseOrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (purchaseOrderModel) TableName() string {
	return "purchase_orders"
}

type purchaseOrderLineModel struct {
	ID                  uint            `gorm:"primaryKey;autoIncrement"`
	OrderID             string          `gorm:"not null;index"`
	Sequence            int             `gorm:"not null"`
	PartNumber          string          `gorm:"not null"`
	Quantity            int64           `gorm:"not null"`
	PriceUnit           decimal.Decimal `gorm:"type:decimal(16,4);not null"`
	DatePlanned         time.Time
	SupplierDatePlanned time.Time
}

func (purchaseOrderLineModel) TableName() string {
	return "purchase_order_lines"
}

func newPurchaseOrderModel(order *entities.PurchaseOrder) purchaseOrderModel {
	m := purchaseOrderModel{
		ID:        order.ID.String(),
		Name:      order.Name,
		PartnerID: string(order.PartnerID),
		State:     string(order.State),
		DateOrder: order.DateOrder,
		Active:    order.Active,
	}
	if order.CancelReasonID != nil {
		reason := order.CancelReasonID.String()
		m.CancelReasonID = &reason
	}
	for i, line := range order.Lines {
		m.Lines = append(m.Lines, purchaseOrderLineModel{
			OrderID:             m.ID,
			Sequence:            i,
			PartNumber:          string(line.PartNumber),
			Quantity:            int64(line.Quantity),
			PriceUnit:           line.PriceUnit,
			DatePlanned:         line.DatePlanned,
			SupplierDatePlanned: line.SupplierDatePlanned,
		})
	}
	return m
}

func (m purchaseOrderModel) toEntity() (*entities.PurchaseOrder, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	order := &entities.PurchaseOrder{
		ID:        id,
		Name:      m.Name,
		PartnerID: entities.PartnerID(m.PartnerID),
		State:     entities.OrderState(m.State),
		DateOrder: m.DateOrder,
		Active:    m.Active,
	}
	if m.CancelReasonID != nil {
		reason, err := uuid.Parse(*m.CancelReasonID)
		if err != nil {
			return nil, err
		}
		order.CancelReasonID = &reason
	}
	for _, line := range m.Lines {
		order.Lines = append(order.Lines, entities.PurchaseOrderLine{
			PartNumber:          entities.PartNumber(line.PartNumber),
			Quantity:            entities.Quantity(line.Quantity),
			PriceUnit:           line.PriceUnit,
			DatePlanned:         line.DatePlanned,
			SupplierDatePlanned: line.SupplierDatePlanned,
		})
	}
	return order, nil
}
