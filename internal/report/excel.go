package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SYPclub/facture-flow/internal/models"
)

// ExcelFilename names the spreadsheet export of the monthly declaration.
func ExcelFilename(month time.Month, year int) string {
	return fmt.Sprintf("Etat104_%02d_%d.xlsx", int(month), year)
}

const (
	dataSheet    = "État 104"
	summarySheet = "Résumé"
)

// Excel builds the two-sheet workbook for the declaration: the data sheet
// carries the company header and the per-client table, the summary sheet the
// declaration figures.
func Excel(rep *Etat104, company *models.CompanyInfo) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	name, addr := "YOUR COMPANY NAME", "Company Address"
	taxID, reg, phone, email := "N/A", "N/A", "N/A", "info@company.com"
	if company != nil {
		if company.BusinessName != "" {
			name = company.BusinessName
		}
		if company.Address != "" {
			addr = company.Address
		}
		if company.TaxID != "" {
			taxID = company.TaxID
		}
		if company.CommerceRegNumber != "" {
			reg = company.CommerceRegNumber
		}
		if company.Phone != "" {
			phone = company.Phone
		}
		if company.Email != "" {
			email = company.Email
		}
	}

	row := 1
	writeRow := func(sheet string, values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}

	// Company header block
	headerLines := [][]interface{}{
		{name},
		{addr},
		{fmt.Sprintf("NIF: %s | RC: %s", taxID, reg)},
		{fmt.Sprintf("Tél: %s | Email: %s", phone, email)},
		{},
		{fmt.Sprintf("État 104 - %02d/%d", int(rep.Month), rep.Year)},
		{"Résumé mensuel de la déclaration de TVA"},
		{},
	}
	for _, line := range headerLines {
		if err := writeRow(dataSheet, line...); err != nil {
			return nil, err
		}
	}

	// Client table
	if err := writeRow(dataSheet, "Client", "NIF", "Montant (Excl.)", "TVA", "Total"); err != nil {
		return nil, err
	}
	for _, s := range rep.Clients {
		if err := writeRow(dataSheet, s.ClientName, s.TaxID, s.Subtotal, s.TaxTotal, s.Total); err != nil {
			return nil, err
		}
	}
	if err := writeRow(dataSheet, "TOTAUX:", "", rep.TotalExcl, rep.TotalTax, rep.Total); err != nil {
		return nil, err
	}

	// Summary sheet
	row = 1
	summaryLines := [][]interface{}{
		{"Résumé pour la déclaration de l'État 104"},
		{},
		{"Ventes totales (hors taxes)", rep.TotalExcl},
		{"Total TVA perçue", rep.TotalTax},
		{"Franchise TVA totale (simulée)", rep.FranchiseTVA()},
		{"TVA Due", rep.TVADue()},
	}
	for _, line := range summaryLines {
		if err := writeRow(summarySheet, line...); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
