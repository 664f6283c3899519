package models

import "time"

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PaymentID uint    `gorm:"uniqueIndex" json:"payment_id"`
	Payment   Payment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	InvoiceNumber string `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	PDFURL        string `gorm:"size:255" json:"pdf_url"`

	CreatedAt time.Time `json:"created_at"`
}
