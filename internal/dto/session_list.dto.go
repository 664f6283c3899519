package dto

import "time"

type SessionListDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_minutes"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`

	PackageName  string  `json:"package_name,omitempty"`
	PackagePrice float64 `json:"package_price,omitempty"`

	Paid          bool    `json:"paid"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	PaymentAmount float64 `json:"payment_amount,omitempty"`
}

type PaymentListDTO struct {
	ID              uint       `json:"id"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	PaymentIntentID string     `json:"payment_intent_id"`
	DueDate         time.Time  `json:"due_date"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `json:"created_at"`

	SessionTitle string    `json:"session_title"`
	SessionDate  time.Time `json:"session_date"`

	CouponUsed    string `json:"coupon_used,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	PDFURL        string `json:"pdf_url,omitempty"`
}
