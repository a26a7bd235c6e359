package shipping

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// ShippingService orchestrates shipment creation, tracking, and cancellation
// against the configured carrier, and keeps the order aggregate in sync with
// what the carrier reports.
type ShippingService struct {
	orders  order.Repository
	gateway shipping.CarrierGateway
	cache   shipping.ServiceabilityCache
	logger  *zap.Logger
}

// NewShippingService creates a new shipping application service
func NewShippingService(
	orders order.Repository,
	gateway shipping.CarrierGateway,
	cache shipping.ServiceabilityCache,
	logger *zap.Logger,
) *ShippingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShippingService{
		orders:  orders,
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

// CreateShipment books a carrier shipment for an order. The raw shipping
// address is parsed into structured fields first; parse failures surface as an
// AddressValidationError naming the missing fields. On success the waybill,
// courier name, and a tracking record are persisted on the order.
func (s *ShippingService) CreateShipment(ctx context.Context, orderID uuid.UUID, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.HasShipment() {
		return nil, shared.NewDomainError("SHIPMENT_EXISTS", "Order already has a shipment")
	}

	parsed, err := shipping.ParseAddress(o.ShippingAddress, shipping.ProfileFallback{
		Name:  o.CustomerName,
		Phone: o.CustomerPhone,
	})
	if err != nil {
		s.logger.Warn("shipping address failed to parse",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
		return nil, err
	}

	paymentMode := shipping.PaymentModePrepaid
	if o.IsCOD() {
		paymentMode = shipping.PaymentModeCOD
	}

	var dims shipping.PackageDims
	if req != nil {
		dims = req.Dims()
	}

	shipReq := &shipping.ShipmentRequest{
		Address:             *parsed,
		OrderNumber:         o.OrderNumber,
		OrderDate:           o.CreatedAt,
		PaymentMode:         paymentMode,
		Total:               o.Total,
		ItemCount:           o.ItemCount,
		ProductsDescription: o.ProductsDescription,
		Dims:                dims.Normalize(),
	}

	result, err := s.gateway.CreateShipment(ctx, shipReq)
	if err != nil {
		s.logger.Error("carrier shipment creation failed",
			zap.String("order_id", orderID.String()),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return nil, err
	}

	if err := o.AttachShipment(result.Waybill, s.gateway.CarrierName()); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order after shipment creation: %w", err)
	}

	s.logger.Info("shipment created",
		zap.String("order_id", orderID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("waybill", result.Waybill))

	return ToShipmentResponse(o), nil
}

// TrackByOrder fetches the current tracking snapshot for an order's waybill
// and persists the latest carrier status and raw snapshot on the order.
func (s *ShippingService) TrackByOrder(ctx context.Context, orderID uuid.UUID) (*TrackingResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.HasShipment() {
		return nil, shared.ErrNotFound
	}

	snapshot, err := s.gateway.TrackShipment(ctx, o.Waybill)
	if err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(snapshot)
	o.RecordCarrierStatus(snapshot.Status, string(raw))

	if err := s.orders.Save(ctx, o); err != nil {
		s.logger.Error("failed to persist tracking snapshot",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}

	return &TrackingResponse{
		OrderID:  o.ID.String(),
		Waybill:  o.Waybill,
		Snapshot: snapshot,
	}, nil
}

// TrackByWaybill fetches the current tracking snapshot for a bare waybill
// without touching any order state.
func (s *ShippingService) TrackByWaybill(ctx context.Context, waybill string) (*TrackingResponse, error) {
	if waybill == "" {
		return nil, shared.NewDomainError("INVALID_WAYBILL", "Waybill is required")
	}

	snapshot, err := s.gateway.TrackShipment(ctx, waybill)
	if err != nil {
		return nil, err
	}

	return &TrackingResponse{
		Waybill:  waybill,
		Snapshot: snapshot,
	}, nil
}

// SyncTracking fetches the latest carrier status for an order and reconciles
// the order status against it. The order status only changes when the
// reconciliation table maps the carrier status and the mapped status differs
// from the current one; every sync persists the carrier status regardless.
func (s *ShippingService) SyncTracking(ctx context.Context, orderID uuid.UUID) (*SyncResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.HasShipment() {
		return nil, shared.ErrNotFound
	}

	snapshot, err := s.gateway.TrackShipment(ctx, o.Waybill)
	if err != nil {
		return nil, err
	}

	raw, _ := json.Marshal(snapshot)
	o.RecordCarrierStatus(snapshot.Status, string(raw))

	changed := false
	if mapped, ok := shipping.ReconcileStatus(snapshot.Status, o.Status); ok {
		changed = o.ApplyStatus(mapped, "Carrier reported: "+snapshot.Status, o.CourierName)
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order after tracking sync: %w", err)
	}

	if changed {
		s.logger.Info("order status reconciled from carrier",
			zap.String("order_id", orderID.String()),
			zap.String("carrier_status", snapshot.Status),
			zap.String("order_status", string(o.Status)))
	}

	return &SyncResponse{
		OrderID:       o.ID.String(),
		Waybill:       o.Waybill,
		CarrierStatus: snapshot.Status,
		OrderStatus:   string(o.Status),
		StatusChanged: changed,
	}, nil
}

// CancelShipment cancels the carrier shipment for an order and marks the
// order cancelled.
func (s *ShippingService) CancelShipment(ctx context.Context, orderID uuid.UUID) (*ShipmentResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.HasShipment() {
		return nil, shared.ErrNotFound
	}

	if err := s.gateway.CancelShipment(ctx, o.Waybill); err != nil {
		s.logger.Error("carrier cancellation failed",
			zap.String("order_id", orderID.String()),
			zap.String("waybill", o.Waybill),
			zap.Error(err))
		return nil, err
	}

	if err := o.CancelShipment(); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order after cancellation: %w", err)
	}

	s.logger.Info("shipment cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("waybill", o.Waybill))

	return ToShipmentResponse(o), nil
}

// CheckServiceability reports whether the carrier delivers to a pincode,
// consulting the cache before the carrier and caching fresh verdicts.
func (s *ShippingService) CheckServiceability(ctx context.Context, pincode string) (*ServiceabilityResponse, error) {
	if s.cache != nil {
		if serviceable, found := s.cache.Get(ctx, pincode); found {
			return &ServiceabilityResponse{
				Pincode:     pincode,
				Serviceable: serviceable,
				FromCache:   true,
			}, nil
		}
	}

	serviceable, err := s.gateway.CheckServiceability(ctx, pincode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, pincode, serviceable)
	}

	return &ServiceabilityResponse{
		Pincode:     pincode,
		Serviceable: serviceable,
	}, nil
}

// ListWarehouses returns the carrier-registered pickup locations
func (s *ShippingService) ListWarehouses(ctx context.Context) (*WarehousesResponse, error) {
	raw, err := s.gateway.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	return &WarehousesResponse{Warehouses: raw}, nil
}

// GetTrackingHistory returns the order-side tracking records, newest first
func (s *ShippingService) GetTrackingHistory(ctx context.Context, orderID uuid.UUID) ([]TrackingRecordResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	records, err := s.orders.ListTrackingRecords(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToTrackingRecordResponses(records), nil
}
