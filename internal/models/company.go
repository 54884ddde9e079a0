package models

import "time"

// CompanyInfo is the issuing business's identity printed in the header of
// every exported document. A single row (ID 1) holds the live values; any
// missing field renders as a literal fallback placeholder, never blank.
type CompanyInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BusinessName string `gorm:"size:255" json:"businessName,omitempty"`
	Address      string `gorm:"size:500" json:"address,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	Phone        string `gorm:"size:50" json:"phone,omitempty"`
	Email        string `gorm:"size:255" json:"email,omitempty"`

	// Fiscal identifiers
	TaxID             string `gorm:"size:50" json:"taxid,omitempty"`             // NIF
	CommerceRegNumber string `gorm:"size:50" json:"commerceRegNumber,omitempty"` // RC

	// Branding
	LogoPath string `gorm:"size:500" json:"logo_path,omitempty"`
	// BannerColor is the header band color as an "r,g,b" triple.
	BannerColor string `gorm:"size:20;default:'41,128,185'" json:"banner_color,omitempty"`
}
