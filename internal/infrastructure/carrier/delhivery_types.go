package carrier

import (
	"encoding/json"
)

// ---------------------------------------------------------------------------
// Shipment Creation Types
// ---------------------------------------------------------------------------

// delhiveryCreatePayload is the JSON document sent (string-encoded inside a
// form field) to /cmu/create.json
type delhiveryCreatePayload struct {
	Shipments []delhiveryShipment `json:"shipments"`
}

// delhiveryShipment is one consignment in the create payload. Field names and
// the mix of string/number types follow the carrier's wire format exactly.
type delhiveryShipment struct {
	Name          string `json:"name"`
	Add           string `json:"add"`
	Pin           string `json:"pin"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	Order         string `json:"order"`
	PaymentMode   string `json:"payment_mode"` // "COD" | "Prepaid"
	ReturnPin     string `json:"return_pin"`
	ReturnCity    string `json:"return_city"`
	ReturnPhone   string `json:"return_phone"`
	ReturnAdd     string `json:"return_add"`
	ReturnState   string `json:"return_state"`
	ReturnCountry string `json:"return_country"`
	ProductsDesc  string `json:"products_desc"`
	HSNCode       string `json:"hsn_code"`
	CODAmount     string `json:"cod_amount"`
	OrderDate     string `json:"order_date"`
	TotalAmount   string `json:"total_amount"`
	SellerAdd     string `json:"seller_add"`
	SellerName    string `json:"seller_name"`
	SellerInv     string `json:"seller_inv"`
	Quantity      int    `json:"quantity"`
	Waybill       string `json:"waybill"`
	ShipmentWidth int    `json:"shipment_width"`
	ShipmentHeight int   `json:"shipment_height"`
	Weight        float64 `json:"weight"`
	SellerGSTTin  string `json:"seller_gst_tin"`
	ShippingMode  string `json:"shipping_mode"` // always "Surface"
	AddressType   string `json:"address_type"`  // always "home"
}

// DelhiveryCreateResponse is the response for /cmu/create.json
type DelhiveryCreateResponse struct {
	Waybill  string          `json:"waybill,omitempty"`
	Packages json.RawMessage `json:"packages,omitempty"`
	RMK      string          `json:"rmk,omitempty"`
}

// ---------------------------------------------------------------------------
// Tracking Types
// ---------------------------------------------------------------------------

// DelhiveryTrackResponse is the response for /v1/packages/json
type DelhiveryTrackResponse struct {
	ShipmentData []DelhiveryTrackedShipment `json:"ShipmentData,omitempty"`
}

// DelhiveryTrackedShipment is one tracked shipment entry
type DelhiveryTrackedShipment struct {
	Waybill              string          `json:"Waybill"`
	Status               DelhiveryStatus `json:"Status"`
	ExpectedDeliveryDate string          `json:"ExpectedDeliveryDate"`
	Scans                []DelhiveryScan `json:"Scans,omitempty"`
}

// DelhiveryStatus is the current status block of a tracked shipment
type DelhiveryStatus struct {
	Status         string `json:"Status"`
	StatusCode     string `json:"StatusCode"`
	StatusDateTime string `json:"StatusDateTime"`
	Instructions   string `json:"Instructions"`
}

// DelhiveryScan is a single tracking checkpoint
type DelhiveryScan struct {
	ScanDateTime    string `json:"ScanDateTime"`
	ScanType        string `json:"ScanType"`
	Scan            string `json:"Scan"`
	ScannedLocation string `json:"ScannedLocation"`
	Instructions    string `json:"Instructions"`
}

// ---------------------------------------------------------------------------
// Serviceability Types
// ---------------------------------------------------------------------------

// DelhiveryPincodeResponse is the response for /c/api/pin-codes/json
type DelhiveryPincodeResponse struct {
	DeliveryCodes []json.RawMessage `json:"delivery_codes,omitempty"`
}

// ---------------------------------------------------------------------------
// Cancellation Types
// ---------------------------------------------------------------------------

// delhiveryCancelPayload is the body for /cmu/cancel.json
type delhiveryCancelPayload struct {
	Waybill string `json:"waybill"`
}

// DelhiveryCancelResponse is the response for /cmu/cancel.json
type DelhiveryCancelResponse struct {
	Status  bool   `json:"status,omitempty"`
	Remark  string `json:"remark,omitempty"`
	Waybill string `json:"waybill,omitempty"`
}
