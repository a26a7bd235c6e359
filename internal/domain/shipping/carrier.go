package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CarrierGateway Errors
// ---------------------------------------------------------------------------

var (
	// ErrCarrierNotConfigured indicates the carrier gateway is missing configuration
	ErrCarrierNotConfigured = errors.New("shipping: carrier not configured")
	// ErrCarrierUnavailable indicates a network-level failure reaching the
	// carrier; the operation may be retried later
	ErrCarrierUnavailable = errors.New("shipping: carrier temporarily unavailable")
	// ErrCarrierRequestFailed indicates the carrier returned an HTTP error;
	// transport-class, retryable
	ErrCarrierRequestFailed = errors.New("shipping: carrier request failed")
	// ErrCarrierRejected indicates the carrier was reachable but refused the
	// operation (e.g. an account compliance hold); not retryable without
	// manual intervention
	ErrCarrierRejected = errors.New("shipping: carrier rejected the operation")
	// ErrCarrierInvalidResponse indicates the carrier response could not be parsed
	ErrCarrierInvalidResponse = errors.New("shipping: invalid carrier response")
	// ErrShipmentNotFound indicates the carrier has no shipment for the waybill
	ErrShipmentNotFound = errors.New("shipping: shipment not found")
)

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// PaymentMode is the carrier-side payment mode for a shipment
type PaymentMode string

const (
	PaymentModeCOD     PaymentMode = "COD"
	PaymentModePrepaid PaymentMode = "Prepaid"
)

// PackageDims describes the physical package for a shipment. Zero values are
// replaced by the carrier defaults at request construction.
type PackageDims struct {
	WeightKg float64
	WidthCm  int
	HeightCm int
}

// Default package dimensions applied when the caller does not supply any
const (
	DefaultWeightKg = 0.5
	DefaultWidthCm  = 10
	DefaultHeightCm = 10
)

// Normalize fills zero dims with the defaults
func (d PackageDims) Normalize() PackageDims {
	if d.WeightKg <= 0 {
		d.WeightKg = DefaultWeightKg
	}
	if d.WidthCm <= 0 {
		d.WidthCm = DefaultWidthCm
	}
	if d.HeightCm <= 0 {
		d.HeightCm = DefaultHeightCm
	}
	return d
}

// ShipmentRequest combines a parsed address with order metadata for one
// outbound shipment-creation call. It is immutable once constructed and lives
// only for the duration of that call.
type ShipmentRequest struct {
	Address             ParsedAddress
	OrderNumber         string
	OrderDate           time.Time
	PaymentMode         PaymentMode
	Total               decimal.Decimal
	ItemCount           int
	ProductsDescription string
	Dims                PackageDims
}

// Validate checks the request carries everything the carrier requires
func (r *ShipmentRequest) Validate() error {
	if r.OrderNumber == "" {
		return errors.New("shipping: order number is required")
	}
	if r.Address.PostalCode == "" || r.Address.City == "" || r.Address.State == "" {
		return errors.New("shipping: address is missing pincode, city, or state")
	}
	switch r.PaymentMode {
	case PaymentModeCOD, PaymentModePrepaid:
	default:
		return errors.New("shipping: invalid payment mode")
	}
	return nil
}

// ShipmentResult is the outcome of a successful shipment creation
type ShipmentResult struct {
	Waybill string
	// Raw is the opaque carrier response payload, kept for diagnosis and for
	// persisting alongside the order
	Raw json.RawMessage
}

// ScanEvent is a single carrier-reported tracking checkpoint
type ScanEvent struct {
	ScanDate     string `json:"scan_date"`
	ScanType     string `json:"scan_type"`
	ScanDetail   string `json:"scan_detail"`
	Location     string `json:"location"`
	Instructions string `json:"instructions"`
}

// TrackingSnapshot is the normalized view of one tracking response. Fields
// the carrier omits are empty strings rather than nulls so the shape stays
// stable for consumers.
type TrackingSnapshot struct {
	Waybill          string      `json:"waybill"`
	Status           string      `json:"status"`
	StatusCode       string      `json:"status_code"`
	StatusDate       string      `json:"status_date"`
	ExpectedDelivery string      `json:"expected_delivery"`
	CurrentLocation  string      `json:"current_location"`
	Scans            []ScanEvent `json:"scans"`
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// CarrierGateway is the port to a third-party shipping carrier. Every call
// performs at most one outbound HTTP request; no call retries automatically.
type CarrierGateway interface {
	// CarrierName returns the display name of the carrier
	CarrierName() string

	// CreateShipment books a shipment. An HTTP-success response with no
	// waybill is a business rejection (ErrCarrierRejected), distinct from a
	// transport failure.
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResult, error)

	// TrackShipment fetches the current tracking snapshot for a waybill
	TrackShipment(ctx context.Context, waybill string) (*TrackingSnapshot, error)

	// CheckServiceability reports whether the carrier delivers to the pincode
	CheckServiceability(ctx context.Context, pincode string) (bool, error)

	// CancelShipment cancels the shipment for a waybill
	CancelShipment(ctx context.Context, waybill string) error

	// ListWarehouses returns the carrier-registered pickup locations as the
	// raw carrier payload
	ListWarehouses(ctx context.Context) (json.RawMessage, error)
}

// ServiceabilityCache caches pincode serviceability verdicts
type ServiceabilityCache interface {
	// Get returns the cached verdict and whether one exists
	Get(ctx context.Context, pincode string) (serviceable bool, found bool)

	// Set stores a verdict
	Set(ctx context.Context, pincode string, serviceable bool)
}
