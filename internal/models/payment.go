package models

import "time"

// PaymentMethod enumerates how an invoice gets paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck,
		PaymentMethodCard, PaymentMethodOther:
		return true
	default:
		return false
	}
}

// Payment records money received against a final invoice. The service layer
// guards the amount against the invoice's outstanding balance at entry time.
type Payment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID string        `gorm:"size:36;index;not null" json:"invoiceid"`
	Amount    float64       `gorm:"type:decimal(14,2);not null" json:"amount"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Method    PaymentMethod `gorm:"size:20;not null" json:"method"`
	Reference string        `gorm:"size:100" json:"reference,omitempty"`
	Notes     string        `gorm:"size:500" json:"notes,omitempty"`
}
