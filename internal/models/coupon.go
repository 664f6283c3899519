package models

import "time"

type Coupon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Type        string `gorm:"size:20;not null" json:"type"` // percentage | fixed_amount
	Value       float64 `json:"value"`
	Description string `gorm:"size:255" json:"description"`

	UsageLimit *int `json:"usage_limit"`
	UsedCount  int  `gorm:"default:0" json:"used_count"`

	Active     bool       `gorm:"default:true" json:"is_active"`
	ValidUntil *time.Time `json:"valid_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentCoupon records a coupon applied to a concrete payment.
type PaymentCoupon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PaymentID uint `gorm:"index" json:"payment_id"`
	CouponID  uint `json:"coupon_id"`

	DiscountAmount float64 `json:"discount_amount"`

	CreatedAt time.Time `json:"created_at"`
}
