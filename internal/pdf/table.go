package pdf

import (
	"strconv"

	"github.com/SYPclub/facture-flow/internal/models"
)

// tableColumn describes one items-table column.
type tableColumn struct {
	header string
	width  float64
	align  string
	value  func(it *models.LineItem) string
}

// itemColumns returns the column set for a document kind. Proformas carry a
// discount column, delivery notes trade the monetary columns for a
// description column.
func itemColumns(docType string) []tableColumn {
	name := tableColumn{"Désignation", 0, "L", func(it *models.LineItem) string { return it.ProductName }}
	code := tableColumn{"Code", 20, "L", func(it *models.LineItem) string { return it.ProductCode }}
	qty := tableColumn{"Qté", 12, "C", func(it *models.LineItem) string { return formatQty(it.Quantity) }}
	unit := tableColumn{"Unité", 15, "C", func(it *models.LineItem) string { return it.Unit }}

	switch docType {
	case models.DocumentTypeDelivery:
		desc := tableColumn{"Description", 70, "L", func(it *models.LineItem) string { return it.ProductDescription }}
		name.width = 65
		return []tableColumn{name, code, desc, qty, unit}
	case models.DocumentTypeProforma:
		name.width = 40
		return []tableColumn{
			name, code, qty, unit,
			{"P.U. HT", 20, "R", func(it *models.LineItem) string { return formatAmount(it.UnitPrice) }},
			{"Rem. %", 13, "C", func(it *models.LineItem) string { return trimPct(it.Discount) }},
			{"TVA %", 12, "C", func(it *models.LineItem) string { return trimPct(it.TaxRate) }},
			{"Total HT", 20, "R", func(it *models.LineItem) string { return formatAmount(it.TotalExcl) }},
			{"TVA", 15, "R", func(it *models.LineItem) string { return formatAmount(it.TotalTax) }},
			{"Total TTC", 0, "R", func(it *models.LineItem) string { return formatAmount(it.Total) }},
		}
	default: // final invoice
		name.width = 48
		return []tableColumn{
			name, code, qty, unit,
			{"P.U. HT", 22, "R", func(it *models.LineItem) string { return formatAmount(it.UnitPrice) }},
			{"TVA %", 13, "C", func(it *models.LineItem) string { return trimPct(it.TaxRate) }},
			{"Total HT", 22, "R", func(it *models.LineItem) string { return formatAmount(it.TotalExcl) }},
			{"TVA", 17, "R", func(it *models.LineItem) string { return formatAmount(it.TotalTax) }},
			{"Total TTC", 0, "R", func(it *models.LineItem) string { return formatAmount(it.Total) }},
		}
	}
}

// itemsTable draws the line-items table at the current cursor, paginating
// when rows overflow the page; the header row repeats on each new page.
func (r *Renderer) itemsTable(d *doc, docType string, items []models.LineItem) {
	r.itemsTableAt(d, docType, items, -1)
}

// itemsTableAt is the positioned variant used by the template engine; top < 0
// means "current cursor".
func (r *Renderer) itemsTableAt(d *doc, docType string, items []models.LineItem, top float64) {
	p, tr := d.pdf, d.tr
	if top >= 0 {
		p.SetY(top)
	}

	cols := itemColumns(docType)
	usable := pageWidth - 2*marginLeft
	fixed := 0.0
	flex := 0
	for _, c := range cols {
		if c.width == 0 {
			flex++
		} else {
			fixed += c.width
		}
	}
	flexW := 0.0
	if flex > 0 {
		flexW = (usable - fixed) / float64(flex)
	}
	width := func(c tableColumn) float64 {
		if c.width == 0 {
			return flexW
		}
		return c.width
	}

	headerRow := func() {
		p.SetFont("Helvetica", "B", 8)
		p.SetFillColor(41, 128, 185)
		p.SetTextColor(255, 255, 255)
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			p.CellFormat(width(c), 7, tr(c.header), "1", ln, "C", true, 0, "")
		}
		p.SetTextColor(30, 30, 30)
		p.SetFont("Helvetica", "", 8)
	}
	headerRow()

	_, pageH := p.GetPageSize()
	limit := pageH - bottomGap
	for i := range items {
		if p.GetY()+6 > limit {
			p.AddPage()
			headerRow()
		}
		fill := i%2 == 1
		p.SetFillColor(245, 247, 250)
		for j, c := range cols {
			ln := 0
			if j == len(cols)-1 {
				ln = 1
			}
			p.CellFormat(width(c), 6, tr(c.value(&items[i])), "1", ln, c.align, fill, 0, "")
		}
	}
	p.Ln(3)
}

// trimPct renders a percentage without useless decimals.
func trimPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
