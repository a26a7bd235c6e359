package shipping

import (
	"encoding/json"
	"time"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shipping"
)

// =============================================================================
// Requests
// =============================================================================

// CreateShipmentRequest carries the optional package dimensions for a new
// shipment. Zero values fall back to the carrier defaults.
type CreateShipmentRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"omitempty,gt=0"`
	WidthCm  int     `json:"width_cm" binding:"omitempty,gt=0"`
	HeightCm int     `json:"height_cm" binding:"omitempty,gt=0"`
}

// Dims converts the request to domain package dimensions
func (r *CreateShipmentRequest) Dims() shipping.PackageDims {
	return shipping.PackageDims{
		WeightKg: r.WeightKg,
		WidthCm:  r.WidthCm,
		HeightCm: r.HeightCm,
	}
}

// =============================================================================
// Responses
// =============================================================================

// ShipmentResponse is returned after a shipment is created
type ShipmentResponse struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Waybill     string `json:"waybill"`
	Courier     string `json:"courier"`
	Status      string `json:"status"`
}

// TrackingResponse is the tracking view for an order or bare waybill
type TrackingResponse struct {
	OrderID  string                     `json:"order_id,omitempty"`
	Waybill  string                     `json:"waybill"`
	Snapshot *shipping.TrackingSnapshot `json:"tracking"`
}

// SyncResponse reports the outcome of a tracking sync
type SyncResponse struct {
	OrderID       string `json:"order_id"`
	Waybill       string `json:"waybill"`
	CarrierStatus string `json:"carrier_status"`
	OrderStatus   string `json:"order_status"`
	StatusChanged bool   `json:"status_changed"`
}

// ServiceabilityResponse reports whether a pincode is serviceable
type ServiceabilityResponse struct {
	Pincode     string `json:"pincode"`
	Serviceable bool   `json:"serviceable"`
	FromCache   bool   `json:"from_cache"`
}

// WarehousesResponse wraps the carrier's raw warehouse payload
type WarehousesResponse struct {
	Warehouses json.RawMessage `json:"warehouses"`
}

// TrackingRecordResponse is one order-side tracking history entry
type TrackingRecordResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Courier     string    `json:"courier"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToShipmentResponse builds a ShipmentResponse from an order
func ToShipmentResponse(o *order.Order) *ShipmentResponse {
	return &ShipmentResponse{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Waybill:     o.Waybill,
		Courier:     o.CourierName,
		Status:      string(o.Status),
	}
}

// ToTrackingRecordResponses converts domain tracking records
func ToTrackingRecordResponses(records []order.TrackingRecord) []TrackingRecordResponse {
	out := make([]TrackingRecordResponse, len(records))
	for i, r := range records {
		out[i] = TrackingRecordResponse{
			Status:      r.Status,
			Description: r.Description,
			Courier:     r.Courier,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}
