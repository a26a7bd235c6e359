package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pincodeURI struct {
	Pincode string `uri:"pincode" binding:"required,pincode"`
}

func TestSetupValidator_PincodeRule(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.GET("/serviceability/:pincode", func(c *gin.Context) {
		var req pincodeURI
		if err := c.ShouldBindUri(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		pincode  string
		wantCode int
	}{
		{"valid pincode", "134003", http.StatusOK},
		{"too short", "1340", http.StatusBadRequest},
		{"too long", "1340031", http.StatusBadRequest},
		{"leading zero", "034003", http.StatusBadRequest},
		{"non-numeric", "13400a", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/serviceability/"+tt.pincode, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
