package pdf

import (
	"fmt"
	"time"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
)

// Etat104Filename names the monthly VAT declaration export.
func Etat104Filename(month time.Month, year int) string {
	return fmt.Sprintf("Etat104_%02d_%d.pdf", int(month), year)
}

// Etat104 renders the monthly VAT declaration summary: one row per client
// with subtotal/tax/total, a totals row, and the declaration summary block.
func (r *Renderer) Etat104(summaries []models.ClientSummary, month time.Month, year int) (out []byte, err error) {
	defer recoverRender(&err)

	var totalExcl, totalTax, grandTotal float64
	for _, s := range summaries {
		totalExcl += s.Subtotal
		totalTax += s.TaxTotal
		grandTotal += s.Total
	}
	totalExcl = money.Round(totalExcl)
	totalTax = money.Round(totalTax)
	grandTotal = money.Round(grandTotal)

	d := r.newDoc("Document établi pour la déclaration G n°104.")
	p, tr := d.pdf, d.tr
	r.header(d, "ÉTAT 104", fmt.Sprintf("%02d/%d", int(month), year), "report")

	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 7, tr(fmt.Sprintf("État 104 - %02d/%d", int(month), year)), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, tr("Résumé mensuel de la déclaration de TVA"), "", 1, "L", false, 0, "")
	p.Ln(3)

	// Client table
	widths := []float64{62, 35, 30, 25, 30}
	headers := []string{"Client", "NIF", "Montant (Excl.)", "TVA", "Total"}
	p.SetFont("Helvetica", "B", 9)
	p.SetFillColor(41, 128, 185)
	p.SetTextColor(255, 255, 255)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		p.CellFormat(widths[i], 7, tr(h), "1", ln, "C", true, 0, "")
	}
	p.SetTextColor(30, 30, 30)
	p.SetFont("Helvetica", "", 9)

	_, pageH := p.GetPageSize()
	limit := pageH - bottomGap
	for _, s := range summaries {
		if p.GetY()+6 > limit {
			p.AddPage()
		}
		p.CellFormat(widths[0], 6, tr(s.ClientName), "1", 0, "L", false, 0, "")
		p.CellFormat(widths[1], 6, tr(s.TaxID), "1", 0, "L", false, 0, "")
		p.CellFormat(widths[2], 6, tr(formatAmount(s.Subtotal)), "1", 0, "R", false, 0, "")
		p.CellFormat(widths[3], 6, tr(formatAmount(s.TaxTotal)), "1", 0, "R", false, 0, "")
		p.CellFormat(widths[4], 6, tr(formatAmount(s.Total)), "1", 1, "R", false, 0, "")
	}

	// Totals row
	p.SetFont("Helvetica", "B", 9)
	p.SetFillColor(52, 73, 94)
	p.SetTextColor(255, 255, 255)
	p.CellFormat(widths[0], 7, tr("TOTAUX"), "1", 0, "L", true, 0, "")
	p.CellFormat(widths[1], 7, "", "1", 0, "L", true, 0, "")
	p.CellFormat(widths[2], 7, tr(formatAmount(totalExcl)), "1", 0, "R", true, 0, "")
	p.CellFormat(widths[3], 7, tr(formatAmount(totalTax)), "1", 0, "R", true, 0, "")
	p.CellFormat(widths[4], 7, tr(formatAmount(grandTotal)), "1", 1, "R", true, 0, "")
	p.SetTextColor(30, 30, 30)
	p.Ln(8)

	// Declaration summary
	p.SetFont("Helvetica", "B", 11)
	p.CellFormat(0, 7, tr("Résumé pour la déclaration de l'État 104"), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, tr("Ventes totales (hors taxes): "+formatAmount(totalExcl)), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, tr("Total TVA perçue: "+formatAmount(totalTax)), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, tr("Franchise TVA totale (simulée): "+formatAmount(money.Round(totalTax*0.3))), "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, tr("TVA Due: "+formatAmount(money.Round(totalTax*0.7))), "", 1, "L", false, 0, "")

	return d.output()
}
