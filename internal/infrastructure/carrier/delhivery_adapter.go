package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// maxDelhiveryResponseSize limits the response body size to prevent memory exhaustion
const maxDelhiveryResponseSize = 10 * 1024 * 1024 // 10MB max response

// DelhiveryAdapter implements shipping.CarrierGateway against the Delhivery
// Express API. Every method performs exactly one outbound request; retry
// policy is left to callers.
type DelhiveryAdapter struct {
	config     *DelhiveryConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDelhiveryAdapter creates a new Delhivery adapter with the given configuration
func NewDelhiveryAdapter(config *DelhiveryConfig, logger *zap.Logger) (*DelhiveryAdapter, error) {
	if config == nil {
		return nil, shipping.ErrCarrierNotConfigured
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DelhiveryAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// CarrierName returns the display name of the carrier
func (a *DelhiveryAdapter) CarrierName() string {
	return "Delhivery"
}

// ---------------------------------------------------------------------------
// Shipment Creation
// ---------------------------------------------------------------------------

// CreateShipment books a shipment. The create endpoint takes a form body with
// the shipment document JSON-encoded inside the data field. An HTTP 200 with
// no waybill in the response means the carrier accepted the request but
// refused the booking, which is reported as ErrCarrierRejected.
func (a *DelhiveryAdapter) CreateShipment(ctx context.Context, req *shipping.ShipmentRequest) (*shipping.ShipmentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload := a.buildCreatePayload(req)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("delhivery: failed to marshal shipment payload: %w", err)
	}

	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", string(payloadJSON))

	a.logger.Info("creating delhivery shipment",
		zap.String("order_number", req.OrderNumber),
		zap.String("pincode", req.Address.PostalCode),
		zap.String("payment_mode", string(req.PaymentMode)))

	body, err := a.doRequest(ctx, http.MethodPost, "/cmu/create.json",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		a.logger.Error("delhivery shipment creation failed",
			zap.String("order_number", req.OrderNumber),
			zap.Error(err))
		return nil, err
	}

	var resp DelhiveryCreateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err)
	}

	if resp.Waybill == "" {
		a.logger.Error("delhivery rejected shipment",
			zap.String("order_number", req.OrderNumber),
			zap.String("remark", resp.RMK),
			zap.ByteString("response", body))
		return nil, shipping.ErrCarrierRejected
	}

	a.logger.Info("delhivery shipment created",
		zap.String("order_number", req.OrderNumber),
		zap.String("waybill", resp.Waybill))

	return &shipping.ShipmentResult{
		Waybill: resp.Waybill,
		Raw:     json.RawMessage(body),
	}, nil
}

func (a *DelhiveryAdapter) buildCreatePayload(req *shipping.ShipmentRequest) delhiveryCreatePayload {
	dims := req.Dims.Normalize()
	total := req.Total.String()

	codAmount := "0"
	if req.PaymentMode == shipping.PaymentModeCOD {
		codAmount = total
	}

	productsDesc := req.ProductsDescription
	if productsDesc == "" {
		productsDesc = "General Items"
	}

	quantity := req.ItemCount
	if quantity <= 0 {
		quantity = 1
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	ret := a.config.Return
	return delhiveryCreatePayload{
		Shipments: []delhiveryShipment{{
			Name:           req.Address.Name,
			Add:            req.Address.Street,
			Pin:            req.Address.PostalCode,
			City:           req.Address.City,
			State:          req.Address.State,
			Country:        ret.Country,
			Phone:          req.Address.Phone,
			Order:          req.OrderNumber,
			PaymentMode:    string(req.PaymentMode),
			ReturnPin:      ret.Pin,
			ReturnCity:     ret.City,
			ReturnPhone:    ret.Phone,
			ReturnAdd:      ret.Address,
			ReturnState:    ret.State,
			ReturnCountry:  ret.Country,
			ProductsDesc:   productsDesc,
			HSNCode:        "",
			CODAmount:      codAmount,
			OrderDate:      orderDate.Format("2006-01-02 15:04:05"),
			TotalAmount:    total,
			SellerAdd:      ret.Address,
			SellerName:     a.config.ClientName,
			SellerInv:      req.OrderNumber,
			Quantity:       quantity,
			Waybill:        "",
			ShipmentWidth:  dims.WidthCm,
			ShipmentHeight: dims.HeightCm,
			Weight:         dims.WeightKg,
			SellerGSTTin:   "",
			ShippingMode:   "Surface",
			AddressType:    "home",
		}},
	}
}

// ---------------------------------------------------------------------------
// Tracking
// ---------------------------------------------------------------------------

// TrackShipment fetches and normalizes the tracking snapshot for a waybill.
// An empty ShipmentData array means the carrier does not know the waybill.
func (a *DelhiveryAdapter) TrackShipment(ctx context.Context, waybill string) (*shipping.TrackingSnapshot, error) {
	if waybill == "" {
		return nil, shipping.ErrShipmentNotFound
	}

	path := "/v1/packages/json/?waybill=" + url.QueryEscape(waybill)
	body, err := a.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		a.logger.Error("delhivery tracking failed",
			zap.String("waybill", waybill),
			zap.Error(err))
		return nil, err
	}

	var resp DelhiveryTrackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err)
	}

	if len(resp.ShipmentData) == 0 {
		return nil, shipping.ErrShipmentNotFound
	}

	return normalizeTracking(&resp.ShipmentData[0]), nil
}

// normalizeTracking flattens the carrier's tracking shape. The current
// location is reported in the status block's Instructions field.
func normalizeTracking(s *DelhiveryTrackedShipment) *shipping.TrackingSnapshot {
	status := s.Status.Status
	if status == "" {
		status = "Unknown"
	}

	snapshot := &shipping.TrackingSnapshot{
		Waybill:          s.Waybill,
		Status:           status,
		StatusCode:       s.Status.StatusCode,
		StatusDate:       s.Status.StatusDateTime,
		ExpectedDelivery: s.ExpectedDeliveryDate,
		CurrentLocation:  s.Status.Instructions,
		Scans:            make([]shipping.ScanEvent, 0, len(s.Scans)),
	}

	for _, scan := range s.Scans {
		snapshot.Scans = append(snapshot.Scans, shipping.ScanEvent{
			ScanDate:     scan.ScanDateTime,
			ScanType:     scan.ScanType,
			ScanDetail:   scan.Scan,
			Location:     scan.ScannedLocation,
			Instructions: scan.Instructions,
		})
	}

	return snapshot
}

// ---------------------------------------------------------------------------
// Serviceability
// ---------------------------------------------------------------------------

// CheckServiceability reports whether Delhivery delivers to the pincode. A
// pincode is serviceable iff the carrier returns a non-empty delivery_codes
// array for it.
func (a *DelhiveryAdapter) CheckServiceability(ctx context.Context, pincode string) (bool, error) {
	path := "/c/api/pin-codes/json/?filter_codes=" + url.QueryEscape(pincode)
	body, err := a.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return false, err
	}

	var resp DelhiveryPincodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err)
	}

	return len(resp.DeliveryCodes) > 0, nil
}

// ---------------------------------------------------------------------------
// Cancellation
// ---------------------------------------------------------------------------

// CancelShipment cancels the shipment for a waybill
func (a *DelhiveryAdapter) CancelShipment(ctx context.Context, waybill string) error {
	if waybill == "" {
		return shipping.ErrShipmentNotFound
	}

	payload, err := json.Marshal(delhiveryCancelPayload{Waybill: waybill})
	if err != nil {
		return fmt.Errorf("delhivery: failed to marshal cancel payload: %w", err)
	}

	_, err = a.doRequest(ctx, http.MethodPost, "/cmu/cancel.json",
		bytes.NewReader(payload), "application/json")
	if err != nil {
		a.logger.Error("delhivery cancellation failed",
			zap.String("waybill", waybill),
			zap.Error(err))
		return err
	}

	a.logger.Info("delhivery shipment cancelled", zap.String("waybill", waybill))
	return nil
}

// ---------------------------------------------------------------------------
// Warehouses
// ---------------------------------------------------------------------------

// ListWarehouses returns the carrier-registered pickup locations as the raw
// carrier payload; the shape is carrier-defined and passed through unchanged
func (a *DelhiveryAdapter) ListWarehouses(ctx context.Context) (json.RawMessage, error) {
	body, err := a.doRequest(ctx, http.MethodGet, "/backend/clientwarehouse/all/", nil, "")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs one HTTP request against the Delhivery API. Network
// failures map to ErrCarrierUnavailable and HTTP error statuses to
// ErrCarrierRequestFailed; both are transport-class and safe to retry.
func (a *DelhiveryAdapter) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("delhivery: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+a.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxDelhiveryResponseSize))
	if err != nil {
		return nil, fmt.Errorf("delhivery: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", shipping.ErrCarrierRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// Ensure DelhiveryAdapter implements the gateway port
var _ shipping.CarrierGateway = (*DelhiveryAdapter)(nil)
