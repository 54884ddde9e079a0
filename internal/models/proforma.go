package models

import (
	"time"

	"gorm.io/gorm"
)

// ProformaStatus is the lifecycle state of a proforma invoice.
type ProformaStatus string

const (
	ProformaStatusDraft    ProformaStatus = "draft"
	ProformaStatusSent     ProformaStatus = "sent"
	ProformaStatusApproved ProformaStatus = "approved"
	ProformaStatusRejected ProformaStatus = "rejected"
)

// Proforma is a preliminary, non-binding invoice sent before final billing.
// Approving one normally goes through conversion into a FinalInvoice.
type Proforma struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Number   string  `gorm:"size:50;uniqueIndex;not null" json:"number"`
	ClientID string  `gorm:"size:36;index;not null" json:"clientid"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate time.Time `gorm:"not null" json:"issuedate"`
	DueDate   time.Time `json:"duedate"`

	Status ProformaStatus `gorm:"size:20;default:'draft'" json:"status"`
	Notes  string         `gorm:"type:text" json:"notes,omitempty"`

	PaymentMethod PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	StampTax      float64       `gorm:"type:decimal(12,2);default:0" json:"stamp_tax"`

	Items []LineItem `gorm:"polymorphic:Document;polymorphicValue:proforma" json:"items,omitempty"`

	// Derived, persisted
	Subtotal float64 `gorm:"type:decimal(14,2)" json:"subtotal"`
	TaxTotal float64 `gorm:"type:decimal(14,2)" json:"taxTotal"`
	Total    float64 `gorm:"type:decimal(14,2)" json:"total"`
}

// CanEdit reports whether the proforma's items are still mutable.
func (p *Proforma) CanEdit() bool {
	return p.Status == ProformaStatusDraft || p.Status == ProformaStatusSent
}

// RecomputeTotals refreshes every line and the document aggregates.
func (p *Proforma) RecomputeTotals() {
	p.Subtotal, p.TaxTotal, p.Total = recomputeItems(p.Items)
}
