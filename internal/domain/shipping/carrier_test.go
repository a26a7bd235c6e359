package shipping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPackageDims_Normalize(t *testing.T) {
	t.Run("zero dims get defaults", func(t *testing.T) {
		dims := PackageDims{}.Normalize()
		assert.Equal(t, DefaultWeightKg, dims.WeightKg)
		assert.Equal(t, DefaultWidthCm, dims.WidthCm)
		assert.Equal(t, DefaultHeightCm, dims.HeightCm)
	})

	t.Run("explicit dims are kept", func(t *testing.T) {
		dims := PackageDims{WeightKg: 2.5, WidthCm: 30, HeightCm: 20}.Normalize()
		assert.Equal(t, 2.5, dims.WeightKg)
		assert.Equal(t, 30, dims.WidthCm)
		assert.Equal(t, 20, dims.HeightCm)
	})

	t.Run("negative values treated as unset", func(t *testing.T) {
		dims := PackageDims{WeightKg: -1, WidthCm: -5}.Normalize()
		assert.Equal(t, DefaultWeightKg, dims.WeightKg)
		assert.Equal(t, DefaultWidthCm, dims.WidthCm)
	})
}

func TestShipmentRequest_Validate(t *testing.T) {
	valid := func() *ShipmentRequest {
		return &ShipmentRequest{
			Address: ParsedAddress{
				Name:       "Rahul Singh",
				Phone:      "9876543210",
				Street:     "#12 MG Road",
				City:       "Ambala",
				State:      "Haryana",
				PostalCode: "134003",
			},
			OrderNumber: "ORD-1001",
			OrderDate:   time.Now(),
			PaymentMode: PaymentModePrepaid,
			Total:       decimal.NewFromInt(499),
			ItemCount:   2,
			Dims:        PackageDims{}.Normalize(),
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing order number", func(t *testing.T) {
		req := valid()
		req.OrderNumber = ""
		assert.Error(t, req.Validate())
	})

	t.Run("missing locality fields", func(t *testing.T) {
		req := valid()
		req.Address.City = ""
		assert.Error(t, req.Validate())
	})

	t.Run("invalid payment mode", func(t *testing.T) {
		req := valid()
		req.PaymentMode = "cheque"
		assert.Error(t, req.Validate())
	})
}
