// Package report builds the periodic fiscal reports, currently the monthly
// État 104 VAT declaration summary.
package report

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
)

// Etat104 aggregates a month of final invoices per client.
type Etat104 struct {
	Month     time.Month
	Year      int
	Clients   []models.ClientSummary
	TotalExcl float64
	TotalTax  float64
	Total     float64
}

// BuildEtat104 sums the month's final invoices per client. Cancelled and
// credited invoices do not count toward the declaration.
func BuildEtat104(ctx context.Context, db *gorm.DB, month time.Month, year int) (*Etat104, error) {
	// Issue dates are stamped in local time, so the month window must be too.
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var rows []models.ClientSummary
	err := db.WithContext(ctx).
		Model(&models.FinalInvoice{}).
		Select("final_invoices.client_id as client_id, clients.name as client_name, clients.tax_id as tax_id, "+
			"SUM(final_invoices.subtotal) as subtotal, SUM(final_invoices.tax_total) as tax_total, SUM(final_invoices.total) as total").
		Joins("JOIN clients ON clients.id = final_invoices.client_id").
		Where("final_invoices.issue_date >= ? AND final_invoices.issue_date < ?", start, end).
		Where("final_invoices.status NOT IN ?", []models.InvoiceStatus{
			models.InvoiceStatusCancelled, models.InvoiceStatusCredited,
		}).
		Group("final_invoices.client_id, clients.name, clients.tax_id").
		Order("clients.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("etat104 aggregation: %w", err)
	}

	rep := &Etat104{Month: month, Year: year, Clients: rows}
	for i := range rows {
		rows[i].Subtotal = money.Round(rows[i].Subtotal)
		rows[i].TaxTotal = money.Round(rows[i].TaxTotal)
		rows[i].Total = money.Round(rows[i].Total)
		rep.TotalExcl += rows[i].Subtotal
		rep.TotalTax += rows[i].TaxTotal
		rep.Total += rows[i].Total
	}
	rep.TotalExcl = money.Round(rep.TotalExcl)
	rep.TotalTax = money.Round(rep.TotalTax)
	rep.Total = money.Round(rep.Total)
	return rep, nil
}

// FranchiseTVA is the simulated VAT franchise carried on the declaration
// summary (30% of collected VAT, the remainder being due).
func (r *Etat104) FranchiseTVA() float64 { return money.Round(r.TotalTax * 0.3) }

// TVADue is the VAT owed after the simulated franchise.
func (r *Etat104) TVADue() float64 { return money.Round(r.TotalTax * 0.7) }
