package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
)

// Seed installs development reference data: the company identity row, the
// default document templates and a small product catalog. Every insert is
// idempotent so Seed can run at each startup.
func Seed(db *gorm.DB) error {
	if err := seedCompany(db); err != nil {
		return err
	}
	if err := seedTemplates(db); err != nil {
		return err
	}
	return seedProducts(db)
}

func seedCompany(db *gorm.DB) error {
	var existing models.CompanyInfo
	err := db.First(&existing, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.CompanyInfo{
		ID:           1,
		BusinessName: "SARL Exemple Commerce",
		Address:      "Zone industrielle, lot 12",
		City:         "Alger",
		Phone:        "+213 21 00 00 00",
		Email:        "contact@exemple.dz",
		TaxID:        "000016001234567",
		CommerceRegNumber: "16/00-1234567B00",
	}).Error
}

func seedTemplates(db *gorm.DB) error {
	defaults := []models.Template{
		{ID: "invoice-default", Name: "Default Invoice", DocumentType: models.DocumentTypeInvoice, IsDefault: true},
		{ID: "proforma-default", Name: "Default Proforma", DocumentType: models.DocumentTypeProforma, IsDefault: true},
		{ID: "delivery-default", Name: "Default Delivery Note", DocumentType: models.DocumentTypeDelivery, IsDefault: true},
		{ID: "report-default", Name: "Default Report", DocumentType: models.DocumentTypeReport, IsDefault: true},
	}
	for _, tpl := range defaults {
		var existing models.Template
		err := db.Where("id = ?", tpl.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&tpl).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	catalog := []models.Product{
		{ID: models.NewID(), Code: "CIM-50", Name: "Ciment 50kg", UnitPrice: 750, TaxRate: 19, StockQuantity: 500, Unit: "sac", CreatedAt: now},
		{ID: models.NewID(), Code: "FER-12", Name: "Fer à béton 12mm", UnitPrice: 1200, TaxRate: 19, StockQuantity: 300, Unit: "barre", CreatedAt: now},
		{ID: models.NewID(), Code: "SRV-LIV", Name: "Livraison sur site", UnitPrice: 3000, TaxRate: 9, StockQuantity: 0, Unit: "forfait", CreatedAt: now},
	}
	return db.Create(&catalog).Error
}
