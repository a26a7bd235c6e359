package shipping

import (
	"github.com/storefront/backend/internal/domain/order"
)

// statusMapping pairs a carrier-reported status with the order status it
// reconciles to. The table is an ordered list checked by exact string match;
// updating it is a code change, by design.
type statusMapping struct {
	CarrierStatus string
	OrderStatus   order.Status
}

var statusMappings = []statusMapping{
	{"Dispatched", order.StatusShipped},
	{"In Transit", order.StatusShipped},
	{"Out for Delivery", order.StatusShipped},
	{"Delivered", order.StatusDelivered},
	{"RTO", order.StatusCancelled},
	{"Cancelled", order.StatusCancelled},
}

// ReconcileStatus maps a carrier status onto an order status. A carrier
// status not present in the table leaves the order status unchanged: the
// second return value reports whether a mapping was found. Pure and
// deterministic.
func ReconcileStatus(carrierStatus string, current order.Status) (order.Status, bool) {
	for _, m := range statusMappings {
		if m.CarrierStatus == carrierStatus {
			return m.OrderStatus, true
		}
	}
	return current, false
}
