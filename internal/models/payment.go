package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID uint    `gorm:"index" json:"session_id"`
	Session   Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:10;default:'usd'" json:"currency"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	PaymentIntentID string `gorm:"size:100;uniqueIndex" json:"payment_intent_id"`

	DueDate time.Time  `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
