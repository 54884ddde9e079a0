package models

import "time"

// Client is a customer of the business. The registry fields (NIF, NIS, AI,
// RC, RIB, CCP) follow Algerian fiscal identification and appear verbatim on
// exported documents.
type Client struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"not null;index" json:"name"`
	Address string `gorm:"size:500" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	Country string `gorm:"size:100" json:"country"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`

	// Fiscal and registry identifiers
	TaxID string `gorm:"size:50;index" json:"taxid"` // NIF
	NIS   string `gorm:"size:50" json:"nis"`
	AI    string `gorm:"size:50" json:"ai"` // article d'imposition
	RC    string `gorm:"size:50" json:"rc"` // registre de commerce
	RIB   string `gorm:"size:50" json:"rib"`
	CCP   string `gorm:"size:50" json:"ccp"`

	// Primary contact
	Contact    string `gorm:"size:255" json:"contact"`
	TelContact string `gorm:"size:50" json:"telcontact"`

	// Debt is the running unpaid balance across this client's final
	// invoices, maintained by the payment workflow.
	Debt float64 `gorm:"type:decimal(14,2);default:0" json:"debt"`
}
