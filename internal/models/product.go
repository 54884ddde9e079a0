package models

import "time"

// Product is admin-maintained reference data. Documents never point at the
// live row for pricing: each line item copies price, tax rate and unit at the
// time of use so later catalog edits cannot rewrite issued documents.
type Product struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code        string  `gorm:"size:40;not null;uniqueIndex" json:"code"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	UnitPrice   float64 `gorm:"type:decimal(12,2);not null" json:"unitprice"`
	// TaxRate is a percentage, e.g. 19 for the standard TVA rate.
	TaxRate       float64 `gorm:"type:decimal(5,2);not null" json:"taxrate"`
	StockQuantity int     `gorm:"default:0" json:"stockquantity"`
	Unit          string  `gorm:"size:50;default:'unité'" json:"unit"`
}
