package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appshipping "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ShippingService defines the application operations the handler exposes
type ShippingService interface {
	CreateShipment(ctx context.Context, orderID uuid.UUID, req *appshipping.CreateShipmentRequest) (*appshipping.ShipmentResponse, error)
	TrackByOrder(ctx context.Context, orderID uuid.UUID) (*appshipping.TrackingResponse, error)
	TrackByWaybill(ctx context.Context, waybill string) (*appshipping.TrackingResponse, error)
	SyncTracking(ctx context.Context, orderID uuid.UUID) (*appshipping.SyncResponse, error)
	CancelShipment(ctx context.Context, orderID uuid.UUID) (*appshipping.ShipmentResponse, error)
	CheckServiceability(ctx context.Context, pincode string) (*appshipping.ServiceabilityResponse, error)
	ListWarehouses(ctx context.Context) (*appshipping.WarehousesResponse, error)
	GetTrackingHistory(ctx context.Context, orderID uuid.UUID) ([]appshipping.TrackingRecordResponse, error)
}

// ShippingHandler handles shipping API endpoints
type ShippingHandler struct {
	BaseHandler
	service ShippingService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(service ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// RegisterRoutes registers shipping routes on the given group
func (h *ShippingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/shipping")
	{
		group.POST("/orders/:id/shipment", h.CreateShipment)
		group.DELETE("/orders/:id/shipment", h.CancelShipment)
		group.GET("/orders/:id/tracking", h.TrackOrder)
		group.GET("/orders/:id/tracking/history", h.GetTrackingHistory)
		group.POST("/orders/:id/tracking/sync", h.SyncTracking)
		group.GET("/track", h.TrackWaybill)
		group.GET("/serviceability/:pincode", h.CheckServiceability)
		group.GET("/warehouses", h.ListWarehouses)
	}
}

// bindOrderID parses and validates the :id path parameter
func (h *ShippingHandler) bindOrderID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateShipment books a carrier shipment for an order. The body is optional;
// when absent, default package dimensions apply.
func (h *ShippingHandler) CreateShipment(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	var req appshipping.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateShipment(c.Request.Context(), orderID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CancelShipment cancels the carrier shipment for an order
func (h *ShippingHandler) CancelShipment(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	resp, err := h.service.CancelShipment(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TrackOrder returns the current carrier tracking snapshot for an order
func (h *ShippingHandler) TrackOrder(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	resp, err := h.service.TrackByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetTrackingHistory returns the order-side tracking records, newest first
func (h *ShippingHandler) GetTrackingHistory(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	records, err := h.service.GetTrackingHistory(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// SyncTracking reconciles the order status with the carrier-reported status
func (h *ShippingHandler) SyncTracking(c *gin.Context) {
	orderID, ok := h.bindOrderID(c)
	if !ok {
		return
	}

	resp, err := h.service.SyncTracking(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TrackWaybill returns the tracking snapshot for a bare waybill
func (h *ShippingHandler) TrackWaybill(c *gin.Context) {
	waybill := c.Query("waybill")
	if waybill == "" {
		h.BadRequest(c, "Query parameter 'waybill' is required")
		return
	}

	resp, err := h.service.TrackByWaybill(c.Request.Context(), waybill)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CheckServiceability reports whether the carrier delivers to a pincode
func (h *ShippingHandler) CheckServiceability(c *gin.Context) {
	var req dto.PincodeRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CheckServiceability(c.Request.Context(), req.Pincode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListWarehouses returns the carrier-registered pickup locations
func (h *ShippingHandler) ListWarehouses(c *gin.Context) {
	resp, err := h.service.ListWarehouses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
