package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence port for orders
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// Save persists the current state of the order, including any tracking
	// records appended since it was loaded
	Save(ctx context.Context, o *Order) error

	// ListTrackingRecords returns the tracking history for an order, newest first
	ListTrackingRecords(ctx context.Context, orderID uuid.UUID) ([]TrackingRecord, error)
}
