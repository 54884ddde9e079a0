package services

import (
	"fmt"

	"gorm.io/gorm"
)

// Document number prefixes.
const (
	proformaPrefix = "PRO"
	invoicePrefix  = "INV"
	deliveryPrefix = "DN"
)

// nextNumber issues the next sequential number for a document kind and year,
// e.g. INV-2026-0042. It counts inside the caller's transaction so two
// concurrent creations cannot draw the same value, and counts soft-deleted
// rows too so a number is never reissued.
func nextNumber(tx *gorm.DB, model interface{}, prefix string, year int) (string, error) {
	like := fmt.Sprintf("%s-%d-%%", prefix, year)
	var count int64
	if err := tx.Model(model).Unscoped().Where("number LIKE ?", like).Count(&count).Error; err != nil {
		return "", fmt.Errorf("count %s numbers: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, count+1), nil
}
