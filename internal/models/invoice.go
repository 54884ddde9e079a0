package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/money"
)

// InvoiceStatus is the payment state of a final invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusCredited      InvoiceStatus = "credited"
)

// FinalInvoice is the binding, payable invoice, optionally derived from a
// proforma (ProformaID is set once at conversion time and never changes).
type FinalInvoice struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Number   string  `gorm:"size:50;uniqueIndex;not null" json:"number"`
	ClientID string  `gorm:"size:36;index;not null" json:"clientid"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate time.Time  `gorm:"not null" json:"issuedate"`
	DueDate   time.Time  `json:"duedate"`
	PaidDate  *time.Time `json:"paymentdate,omitempty"`

	Status InvoiceStatus `gorm:"size:20;default:'unpaid'" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`

	PaymentMethod    PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentReference string        `gorm:"size:100" json:"paymentreference,omitempty"`
	StampTax         float64       `gorm:"type:decimal(12,2);default:0" json:"stamp_tax"`

	// ProformaID references the originating proforma, if any (one-way).
	ProformaID string `gorm:"size:36;index" json:"proformaId,omitempty"`

	Items    []LineItem `gorm:"polymorphic:Document;polymorphicValue:invoice" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`

	// Derived, persisted
	Subtotal   float64 `gorm:"type:decimal(14,2)" json:"subtotal"`
	TaxTotal   float64 `gorm:"type:decimal(14,2)" json:"taxTotal"`
	Total      float64 `gorm:"type:decimal(14,2)" json:"total"`
	AmountPaid float64 `gorm:"type:decimal(14,2);default:0" json:"amount_paid"`
}

// CanEdit reports whether the invoice's items are still mutable. Once a
// terminal payment state is reached the document is frozen.
func (inv *FinalInvoice) CanEdit() bool {
	return inv.Status == InvoiceStatusUnpaid || inv.Status == InvoiceStatusPartiallyPaid
}

// StampTaxApplies reports whether the stamp tax line is shown: stamp tax is
// levied on cash payments only.
func (inv *FinalInvoice) StampTaxApplies() bool {
	return inv.PaymentMethod == PaymentMethodCash && inv.StampTax > 0
}

// Outstanding is the balance still owed on this invoice, rounded so that a
// settlement entered at the displayed amount always closes it.
func (inv *FinalInvoice) Outstanding() float64 {
	rest := money.Round(inv.Total - inv.AmountPaid)
	if rest < 0 {
		return 0
	}
	return rest
}

// RecomputeTotals refreshes every line and the document aggregates.
func (inv *FinalInvoice) RecomputeTotals() {
	inv.Subtotal, inv.TaxTotal, inv.Total = recomputeItems(inv.Items)
}
