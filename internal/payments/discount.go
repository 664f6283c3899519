package payments

import (
	"time"

	"github.com/velvetlens/studio-booking/internal/models"
)

// CouponUsable reports whether the coupon can still be applied at now:
// active, not expired and under its usage limit.
func CouponUsable(c *models.Coupon, now time.Time) bool {
	if c == nil || !c.Active {
		return false
	}
	if c.ValidUntil != nil && !c.ValidUntil.After(now) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// Discount computes the coupon's discount on amount. Percentage coupons take
// a share of the amount, fixed ones at most the amount itself; the result is
// never negative and never exceeds amount.
func Discount(c *models.Coupon, amount float64) float64 {
	if c == nil || amount <= 0 {
		return 0
	}

	var d float64
	switch c.Type {
	case "percentage":
		d = amount * c.Value / 100
	case "fixed_amount":
		d = c.Value
	}

	if d < 0 {
		return 0
	}
	if d > amount {
		return amount
	}
	return d
}
