package models

import "time"

// Document type keys used by the template store and export endpoints.
const (
	DocumentTypeInvoice  = "invoice"
	DocumentTypeProforma = "proforma"
	DocumentTypeDelivery = "delivery"
	DocumentTypeReport   = "report"
)

// IsAllowedDocumentType reports whether t names a renderable document kind.
func IsAllowedDocumentType(t string) bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypeProforma, DocumentTypeDelivery, DocumentTypeReport:
		return true
	default:
		return false
	}
}

// Template is a designer-authored page layout for one document type.
//
// LayoutData is the JSON-serialized node tree consumed by the substitution
// engine; it only affects rendering, never totals or posting logic. When no
// template exists for a document type the built-in renderer is used, so a
// missing row is not an error.
type Template struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"size:150;not null" json:"name"`
	DocumentType string `gorm:"size:20;not null;index" json:"documentType"`
	IsDefault    bool   `gorm:"default:false" json:"is_default"`

	// LayoutData is stored as JSON text; validated on save.
	LayoutData string `gorm:"type:text" json:"layoutData"`
}
