package models

import "github.com/google/uuid"

// NewID returns a fresh identifier for any persisted record.
func NewID() string { return uuid.NewString() }

// ClientSummary aggregates one client's invoiced amounts over a reporting
// period. Report-only: built by the État 104 query, never persisted.
type ClientSummary struct {
	ClientID   string  `json:"clientid"`
	ClientName string  `json:"clientName"`
	TaxID      string  `json:"taxid"`
	Subtotal   float64 `json:"subtotal"`
	TaxTotal   float64 `json:"taxTotal"`
	Total      float64 `json:"total"`
}

// AllModels lists every persisted model for automigration, in dependency
// order.
func AllModels() []interface{} {
	return []interface{}{
		&Client{},
		&Product{},
		&CompanyInfo{},
		&Proforma{},
		&FinalInvoice{},
		&DeliveryNote{},
		&LineItem{},
		&Payment{},
		&Template{},
	}
}
