package enum

// ── Order lifecycle ──
//
// A flat set, not a state machine: the admin console may move an order to
// any status from any other. Keep it that way unless product says otherwise.

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

// ── Menu sections ──

const (
	CategorySnacks = "snacks"
	CategoryMeals  = "meals"
)

// IsKnownStatus reports whether s is one of the four canonical statuses.
// Callers display unknown statuses with a generic message rather than
// rejecting them.
func IsKnownStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

// IsKnownCategory reports whether c is a valid menu section.
func IsKnownCategory(c string) bool {
	return c == CategorySnacks || c == CategoryMeals
}
