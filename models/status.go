package models

// Order and order-item lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// statusRank orders the fulfillment chain. Cancelled sits outside the chain.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusDelivered: 3,
	StatusCompleted: 4,
}

// legalTransitions is the explicit table of permitted (from, to) edges:
// forward along the fulfillment chain, or cancellation from any non-terminal
// state. Everything else is rejected.
var legalTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusPreparing: true,
		StatusReady:     true,
		StatusDelivered: true,
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusPreparing: {
		StatusReady:     true,
		StatusDelivered: true,
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusReady: {
		StatusDelivered: true,
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusDelivered: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValidStatus reports whether s is one of the six recognized statuses.
func IsValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminalStatus reports whether s permits no further transitions.
func IsTerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the edge from -> to is legal.
func CanTransition(from, to string) bool {
	edges, ok := legalTransitions[from]
	if !ok {
		return false
	}
	return edges[to]
}

// DeriveOrderStatus computes an order's aggregate status from its items.
// Cancelled items are excluded; the order sits at the least-advanced status
// among the rest, so it is "ready" only when every non-cancelled item is
// ready or further along. An order whose items are all cancelled is
// cancelled; an order with no items is pending.
func DeriveOrderStatus(items []OrderItem) string {
	if len(items) == 0 {
		return StatusPending
	}

	derived := ""
	for _, item := range items {
		if item.Status == StatusCancelled {
			continue
		}
		if derived == "" || statusRank[item.Status] < statusRank[derived] {
			derived = item.Status
		}
	}
	if derived == "" {
		return StatusCancelled
	}
	return derived
}
