package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid returns true if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentMethodCOD is the payment method value that maps to cash-on-delivery
// shipments at the carrier.
const PaymentMethodCOD = "cash_on_delivery"

// Order is the aggregate root for a storefront order. The shipping address is
// stored as the raw free-text block the customer entered; structured fields
// are derived at shipment time by the address parser.
type Order struct {
	ID                  uuid.UUID
	OrderNumber         string
	CustomerName        string
	CustomerPhone       string
	ShippingAddress     string // raw text, lines separated by newlines
	PaymentMethod       string
	Total               decimal.Decimal
	ItemCount           int
	ProductsDescription string
	Status              Status

	// Courier fields, populated once a shipment exists
	CourierName            string
	Waybill                string
	CarrierStatus          string
	CarrierStatusUpdatedAt *time.Time
	TrackingData           string // last tracking snapshot, JSON blob

	TrackingRecords []TrackingRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrackingRecord is a single order-side tracking history entry
type TrackingRecord struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Status      string
	Description string
	Courier     string
	CreatedAt   time.Time
}

// NewOrder creates a new order with required fields
func NewOrder(orderNumber, customerName, customerPhone, shippingAddress, paymentMethod string, total decimal.Decimal, itemCount int) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	if itemCount < 0 {
		return nil, shared.NewDomainError("INVALID_ITEM_COUNT", "Item count cannot be negative")
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Total:           total,
		ItemCount:       itemCount,
		Status:          StatusPending,
		TrackingRecords: make([]TrackingRecord, 0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsCOD returns true if the order is paid cash-on-delivery
func (o *Order) IsCOD() bool {
	return o.PaymentMethod == PaymentMethodCOD
}

// HasShipment returns true if a carrier shipment exists for this order
func (o *Order) HasShipment() bool {
	return o.Waybill != ""
}

// AttachShipment records a freshly created carrier shipment on the order.
// The order moves to shipped and a tracking record is appended.
func (o *Order) AttachShipment(waybill, courierName string) error {
	if waybill == "" {
		return shared.NewDomainError("INVALID_WAYBILL", "Waybill cannot be empty")
	}
	if o.HasShipment() {
		return shared.NewDomainError("SHIPMENT_EXISTS", "Order already has a shipment")
	}

	now := time.Now()
	o.Waybill = waybill
	o.CourierName = courierName
	o.CarrierStatus = "Shipped"
	o.CarrierStatusUpdatedAt = &now
	o.Status = StatusShipped
	o.UpdatedAt = now

	o.AddTracking(string(StatusShipped), "Shipment created with "+courierName, courierName)

	return nil
}

// RecordCarrierStatus stores the latest carrier-reported status and raw
// tracking snapshot without touching the order status. Status reconciliation
// is a separate, explicit step.
func (o *Order) RecordCarrierStatus(carrierStatus, trackingData string) {
	now := time.Now()
	o.CarrierStatus = carrierStatus
	o.CarrierStatusUpdatedAt = &now
	if trackingData != "" {
		o.TrackingData = trackingData
	}
	o.UpdatedAt = now
}

// ApplyStatus transitions the order to the given status if it differs from
// the current one. Returns true when a transition happened. description is
// used for the appended tracking record.
func (o *Order) ApplyStatus(status Status, description, courier string) bool {
	if !status.IsValid() || status == o.Status {
		return false
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	o.AddTracking(string(status), description, courier)
	return true
}

// CancelShipment marks the order and its carrier state as cancelled
func (o *Order) CancelShipment() error {
	if !o.HasShipment() {
		return shared.NewDomainError("NO_SHIPMENT", "Order has no shipment to cancel")
	}

	now := time.Now()
	o.CarrierStatus = "Cancelled"
	o.CarrierStatusUpdatedAt = &now
	o.Status = StatusCancelled
	o.UpdatedAt = now

	o.AddTracking(string(StatusCancelled), "Shipment cancelled", o.CourierName)

	return nil
}

// AddTracking appends a tracking history entry to the order
func (o *Order) AddTracking(status, description, courier string) {
	o.TrackingRecords = append(o.TrackingRecords, TrackingRecord{
		ID:          uuid.New(),
		OrderID:     o.ID,
		Status:      status,
		Description: description,
		Courier:     courier,
		CreatedAt:   time.Now(),
	})
}
