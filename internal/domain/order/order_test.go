package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	o, err := NewOrder("ORD-1001", "Rahul Singh", "9876543210",
		"Rahul Singh\n9876543210\n#12 MG Road\nAmbala, Haryana 134003",
		PaymentMethodCOD, decimal.NewFromInt(499), 2)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, StatusPending, o.Status)
		assert.True(t, o.IsCOD())
		assert.False(t, o.HasShipment())
		assert.Empty(t, o.TrackingRecords)
	})

	t.Run("missing order number", func(t *testing.T) {
		_, err := NewOrder("", "a", "b", "c", "card", decimal.Zero, 0)
		assert.Error(t, err)
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := NewOrder("ORD-1", "a", "b", "c", "card", decimal.NewFromInt(-1), 0)
		assert.Error(t, err)
	})
}

func TestOrder_AttachShipment(t *testing.T) {
	t.Run("attaches waybill and moves to shipped", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AttachShipment("WB123456789", "Delhivery")
		require.NoError(t, err)

		assert.Equal(t, "WB123456789", o.Waybill)
		assert.Equal(t, "Delhivery", o.CourierName)
		assert.Equal(t, "Shipped", o.CarrierStatus)
		assert.NotNil(t, o.CarrierStatusUpdatedAt)
		assert.Equal(t, StatusShipped, o.Status)

		require.Len(t, o.TrackingRecords, 1)
		assert.Equal(t, "shipped", o.TrackingRecords[0].Status)
		assert.Equal(t, "Delhivery", o.TrackingRecords[0].Courier)
	})

	t.Run("empty waybill rejected", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.AttachShipment("", "Delhivery"))
	})

	t.Run("second shipment rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachShipment("WB1", "Delhivery"))
		assert.Error(t, o.AttachShipment("WB2", "Delhivery"))
	})
}

func TestOrder_ApplyStatus(t *testing.T) {
	t.Run("transition appends tracking record", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachShipment("WB1", "Delhivery"))

		changed := o.ApplyStatus(StatusDelivered, "Status updated: Delivered", "Delhivery")
		assert.True(t, changed)
		assert.Equal(t, StatusDelivered, o.Status)
		assert.Len(t, o.TrackingRecords, 2)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachShipment("WB1", "Delhivery"))

		changed := o.ApplyStatus(StatusShipped, "Status updated: In Transit", "Delhivery")
		assert.False(t, changed)
		assert.Len(t, o.TrackingRecords, 1)
	})

	t.Run("invalid status is a no-op", func(t *testing.T) {
		o := newTestOrder(t)
		changed := o.ApplyStatus(Status("lost"), "", "")
		assert.False(t, changed)
		assert.Equal(t, StatusPending, o.Status)
	})
}

func TestOrder_CancelShipment(t *testing.T) {
	t.Run("cancels shipped order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AttachShipment("WB1", "Delhivery"))

		require.NoError(t, o.CancelShipment())
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, "Cancelled", o.CarrierStatus)
		assert.Len(t, o.TrackingRecords, 2)
	})

	t.Run("no shipment to cancel", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.CancelShipment())
	})
}

func TestOrder_RecordCarrierStatus(t *testing.T) {
	o := newTestOrder(t)

	o.RecordCarrierStatus("In Transit", `{"status":"In Transit"}`)
	assert.Equal(t, "In Transit", o.CarrierStatus)
	assert.Equal(t, `{"status":"In Transit"}`, o.TrackingData)
	assert.NotNil(t, o.CarrierStatusUpdatedAt)

	// Empty payload keeps the previous blob
	o.RecordCarrierStatus("Delivered", "")
	assert.Equal(t, "Delivered", o.CarrierStatus)
	assert.Equal(t, `{"status":"In Transit"}`, o.TrackingData)
}
