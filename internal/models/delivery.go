package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryStatus is the lifecycle state of a delivery note.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending_delivery"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// DeliveryNote accompanies a physical goods shipment, optionally derived
// from a final invoice. Its printed form carries no monetary columns.
type DeliveryNote struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Number   string  `gorm:"size:50;uniqueIndex;not null" json:"number"`
	ClientID string  `gorm:"size:36;index;not null" json:"clientid"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate    time.Time `gorm:"not null" json:"issuedate"`
	DeliveryDate time.Time `json:"deliverydate"`

	Status DeliveryStatus `gorm:"size:30;default:'pending_delivery'" json:"status"`
	Notes  string         `gorm:"type:text" json:"notes,omitempty"`

	// Transportation details printed on the note
	DriverName string `gorm:"size:255" json:"driver_name,omitempty"`
	VehicleID  string `gorm:"size:50" json:"vehicle_id,omitempty"`
	Carrier    string `gorm:"size:255" json:"carrier,omitempty"`

	// FinalInvoiceID references the originating invoice, if any (one-way).
	FinalInvoiceID string `gorm:"size:36;index" json:"finalInvoiceId,omitempty"`

	Items []LineItem `gorm:"polymorphic:Document;polymorphicValue:delivery" json:"items,omitempty"`

	// Derived, persisted. Kept on the record even though the printed note
	// hides amounts: the État 104 report and invoice reconciliation use them.
	Subtotal float64 `gorm:"type:decimal(14,2)" json:"subtotal"`
	TaxTotal float64 `gorm:"type:decimal(14,2)" json:"taxTotal"`
	Total    float64 `gorm:"type:decimal(14,2)" json:"total"`
}

// CanEdit reports whether the note's items are still mutable.
func (d *DeliveryNote) CanEdit() bool {
	return d.Status == DeliveryStatusPending
}

// RecomputeTotals refreshes every line and the document aggregates.
func (d *DeliveryNote) RecomputeTotals() {
	d.Subtotal, d.TaxTotal, d.Total = recomputeItems(d.Items)
}
