package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderNumber         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName        string          `gorm:"type:varchar(200)"`
	CustomerPhone       string          `gorm:"type:varchar(50)"`
	ShippingAddress     string          `gorm:"type:text"`
	PaymentMethod       string          `gorm:"type:varchar(50);not null"`
	Total               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ItemCount           int             `gorm:"not null;default:0"`
	ProductsDescription string          `gorm:"type:text"`
	Status              order.Status    `gorm:"type:varchar(20);not null;default:'pending';index"`

	CourierName            string     `gorm:"type:varchar(100)"`
	DelhiveryWaybill       string     `gorm:"type:varchar(50);index"`
	DelhiveryStatus        string     `gorm:"type:varchar(100)"`
	DelhiveryStatusUpdated *time.Time `gorm:"column:delhivery_status_updated_at"`
	DelhiveryTrackingData  string     `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	TrackingRecords []TrackingRecordModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		ID:                     m.ID,
		OrderNumber:            m.OrderNumber,
		CustomerName:           m.CustomerName,
		CustomerPhone:          m.CustomerPhone,
		ShippingAddress:        m.ShippingAddress,
		PaymentMethod:          m.PaymentMethod,
		Total:                  m.Total,
		ItemCount:              m.ItemCount,
		ProductsDescription:    m.ProductsDescription,
		Status:                 m.Status,
		CourierName:            m.CourierName,
		Waybill:                m.DelhiveryWaybill,
		CarrierStatus:          m.DelhiveryStatus,
		CarrierStatusUpdatedAt: m.DelhiveryStatusUpdated,
		TrackingData:           m.DelhiveryTrackingData,
		TrackingRecords:        make([]order.TrackingRecord, 0, len(m.TrackingRecords)),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	for _, r := range m.TrackingRecords {
		o.TrackingRecords = append(o.TrackingRecords, *r.ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain Order aggregate.
// Tracking records are persisted separately by the repository.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.ID = o.ID
	m.OrderNumber = o.OrderNumber
	m.CustomerName = o.CustomerName
	m.CustomerPhone = o.CustomerPhone
	m.ShippingAddress = o.ShippingAddress
	m.PaymentMethod = o.PaymentMethod
	m.Total = o.Total
	m.ItemCount = o.ItemCount
	m.ProductsDescription = o.ProductsDescription
	m.Status = o.Status
	m.CourierName = o.CourierName
	m.DelhiveryWaybill = o.Waybill
	m.DelhiveryStatus = o.CarrierStatus
	m.DelhiveryStatusUpdated = o.CarrierStatusUpdatedAt
	m.DelhiveryTrackingData = o.TrackingData
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// TrackingRecordModel is the persistence model for an order tracking entry.
type TrackingRecordModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	Courier     string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TrackingRecordModel) TableName() string {
	return "order_tracking_records"
}

// ToDomain converts the persistence model to a domain TrackingRecord.
func (m *TrackingRecordModel) ToDomain() *order.TrackingRecord {
	return &order.TrackingRecord{
		ID:          m.ID,
		OrderID:     m.OrderID,
		Status:      m.Status,
		Description: m.Description,
		Courier:     m.Courier,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain TrackingRecord.
func (m *TrackingRecordModel) FromDomain(r *order.TrackingRecord) {
	m.ID = r.ID
	m.OrderID = r.OrderID
	m.Status = r.Status
	m.Description = r.Description
	m.Courier = r.Courier
	m.CreatedAt = r.CreatedAt
}
