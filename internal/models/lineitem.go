package models

import (
	"time"

	"github.com/SYPclub/facture-flow/internal/money"
)

// LineItem is one row of a proforma, final invoice or delivery note. The
// owning document is addressed polymorphically (DocumentType carries the
// owner kind). Product fields are a snapshot taken when the line was added.
//
// TotalExcl, TotalTax and Total are derived and persisted; they are
// recomputed through Recompute whenever quantity, price, discount or tax
// rate changes and are never trusted as independently authoritative.
type LineItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DocumentID   string `gorm:"index:idx_item_document;size:36;not null" json:"document_id"`
	DocumentType string `gorm:"index:idx_item_document;size:20;not null" json:"document_type"`
	Position     int    `gorm:"default:0" json:"position"`

	// Product snapshot
	ProductID          string  `gorm:"size:36;index" json:"productId"`
	ProductName        string  `gorm:"size:255" json:"product_name"`
	ProductCode        string  `gorm:"size:40" json:"product_code"`
	ProductDescription string  `gorm:"size:500" json:"product_description"`
	Unit               string  `gorm:"size:50" json:"unit"`
	UnitPrice          float64 `gorm:"type:decimal(12,2);not null" json:"unitprice"`
	TaxRate            float64 `gorm:"type:decimal(5,2);not null" json:"taxrate"`

	Quantity int     `gorm:"not null;default:1" json:"quantity"`
	Discount float64 `gorm:"type:decimal(5,2);default:0" json:"discount"` // percent

	// Derived, persisted
	TotalExcl float64 `gorm:"type:decimal(14,2)" json:"totalExcl"`
	TotalTax  float64 `gorm:"type:decimal(14,2)" json:"totalTax"`
	Total     float64 `gorm:"type:decimal(14,2)" json:"total"`
}

// Recompute refreshes the derived totals from the line's inputs.
func (it *LineItem) Recompute() {
	it.TotalExcl, it.TotalTax, it.Total = money.LineTotals(it.Quantity, it.UnitPrice, it.Discount, it.TaxRate)
}

// LineTotalExcl implements money.Line.
func (it LineItem) LineTotalExcl() float64 { return it.TotalExcl }

// LineTotalTax implements money.Line.
func (it LineItem) LineTotalTax() float64 { return it.TotalTax }

// SnapshotProduct copies the billable fields of a product onto the line.
func (it *LineItem) SnapshotProduct(p *Product) {
	it.ProductID = p.ID
	it.ProductName = p.Name
	it.ProductCode = p.Code
	it.ProductDescription = p.Description
	it.Unit = p.Unit
	it.UnitPrice = p.UnitPrice
	it.TaxRate = p.TaxRate
}

// recomputeItems refreshes every line and returns the document aggregates.
func recomputeItems(items []LineItem) (subtotal, taxTotal, total float64) {
	for i := range items {
		items[i].Recompute()
	}
	return money.DocumentTotals(items)
}
