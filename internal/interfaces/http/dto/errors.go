package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidAddress is used when a shipping address cannot be parsed
	// into the fields the carrier requires
	ErrCodeInvalidAddress = "ERR_INVALID_ADDRESS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Carrier error codes. Rejections are the caller's problem; transport
// failures are the carrier's.
const (
	// ErrCodeCarrierRejected is used when the carrier refused the operation
	ErrCodeCarrierRejected = "ERR_CARRIER_REJECTED"
	// ErrCodeCarrierUnavailable is used when the carrier cannot be reached
	ErrCodeCarrierUnavailable = "ERR_CARRIER_UNAVAILABLE"
	// ErrCodeCarrierFailed is used when the carrier returned an HTTP error
	ErrCodeCarrierFailed = "ERR_CARRIER_FAILED"
	// ErrCodeCarrierInvalidResponse is used when the carrier response could not be parsed
	ErrCodeCarrierInvalidResponse = "ERR_CARRIER_INVALID_RESPONSE"
	// ErrCodeCarrierNotConfigured is used when no carrier is configured
	ErrCodeCarrierNotConfigured = "ERR_CARRIER_NOT_CONFIGURED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors
	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeInvalidAddress: http.StatusUnprocessableEntity,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	// Input errors
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Business rule errors
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Carrier errors: a rejection is unprocessable, transport failures map
	// to gateway-style statuses
	ErrCodeCarrierRejected:        http.StatusUnprocessableEntity,
	ErrCodeCarrierUnavailable:     http.StatusServiceUnavailable,
	ErrCodeCarrierFailed:          http.StatusBadGateway,
	ErrCodeCarrierInvalidResponse: http.StatusBadGateway,
	ErrCodeCarrierNotConfigured:   http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeConflict,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"SHIPMENT_EXISTS":      ErrCodeConflict,
	"NO_SHIPMENT":          ErrCodeConflict,
	"INVALID_WAYBILL":      ErrCodeBadRequest,
	"INVALID_ORDER_NUMBER": ErrCodeBadRequest,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
