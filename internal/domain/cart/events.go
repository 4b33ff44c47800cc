package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventCheckoutCompleted = "checkout.completed"

// CheckoutCompleted is published after a successful checkout. Delivery
// is best-effort; the checkout itself never fails on publish errors.
type CheckoutCompleted struct {
	OwnerEmail  string          `json:"owner_email"`
	Total       decimal.Decimal `json:"total"`
	Items       []CartItem      `json:"items"`
	CompletedAt time.Time       `json:"completed_at"`
}
