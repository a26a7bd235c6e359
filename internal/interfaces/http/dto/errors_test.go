package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"invalid address", ErrCodeInvalidAddress, http.StatusUnprocessableEntity},
		{"conflict", ErrCodeConflict, http.StatusConflict},
		{"carrier rejected", ErrCodeCarrierRejected, http.StatusUnprocessableEntity},
		{"carrier unavailable", ErrCodeCarrierUnavailable, http.StatusServiceUnavailable},
		{"carrier failed", ErrCodeCarrierFailed, http.StatusBadGateway},
		{"carrier invalid response", ErrCodeCarrierInvalidResponse, http.StatusBadGateway},
		{"carrier not configured", ErrCodeCarrierNotConfigured, http.StatusServiceUnavailable},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("SHIPMENT_EXISTS"))
	assert.Equal(t, ErrCodeConflict, NormalizeErrorCode("NO_SHIPMENT"))
	assert.Equal(t, ErrCodeBadRequest, NormalizeErrorCode("INVALID_WAYBILL"))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"waybill": "WB1"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Order not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Order not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "pincode", Message: "Must be a 6-digit pincode"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-123", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "pincode", resp.Error.Details[0].Field)
}
