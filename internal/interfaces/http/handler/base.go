package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// carrierErrorCodes maps carrier sentinel errors to API error codes, checked
// in order with errors.Is so wrapped errors resolve correctly
var carrierErrorCodes = []struct {
	err  error
	code string
}{
	{shipping.ErrShipmentNotFound, dto.ErrCodeNotFound},
	{shipping.ErrCarrierRejected, dto.ErrCodeCarrierRejected},
	{shipping.ErrCarrierUnavailable, dto.ErrCodeCarrierUnavailable},
	{shipping.ErrCarrierRequestFailed, dto.ErrCodeCarrierFailed},
	{shipping.ErrCarrierInvalidResponse, dto.ErrCodeCarrierInvalidResponse},
	{shipping.ErrCarrierNotConfigured, dto.ErrCodeCarrierNotConfigured},
}

// HandleError converts domain, address-validation, and carrier errors into
// the standard error envelope with the appropriate HTTP status
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var addrErr *shipping.AddressValidationError
	if errors.As(err, &addrErr) {
		details := make([]dto.ValidationDetail, 0, len(addrErr.MissingFields))
		for _, field := range addrErr.MissingFields {
			details = append(details, dto.ValidationDetail{
				Field:   field,
				Message: "Could not be extracted from the shipping address",
			})
		}
		resp := dto.Response{
			Success: false,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeInvalidAddress,
				Message:   addrErr.Error(),
				RequestID: requestID,
				Details:   details,
			},
		}
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeInvalidAddress), resp)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	for _, m := range carrierErrorCodes {
		if errors.Is(err, m.err) {
			c.JSON(dto.GetHTTPStatus(m.code), dto.NewErrorResponseWithRequestID(m.code, err.Error(), requestID))
			return
		}
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}
