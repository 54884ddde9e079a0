package pdf

import (
	"fmt"
	"time"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/words"
)

const dateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// detail is one label/value pair of the document-details column.
type detail struct {
	label string
	value string
}

// clientBand draws the client identity on the left and the document details
// on the right.
func (r *Renderer) clientBand(d *doc, client *models.Client, details []detail) {
	p, tr := d.pdf, d.tr
	top := p.GetY()

	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(30, 64, 175)
	p.CellFormat(95, 5, "CLIENT", "", 1, "L", false, 0, "")
	p.SetTextColor(30, 30, 30)
	p.SetFont("Helvetica", "", 9)
	if client != nil {
		p.CellFormat(95, 5, tr(client.Name), "", 1, "L", false, 0, "")
		if client.TaxID != "" {
			p.CellFormat(95, 5, tr("NIF: "+client.TaxID), "", 1, "L", false, 0, "")
		}
		if client.Address != "" {
			p.CellFormat(95, 5, tr(client.Address), "", 1, "L", false, 0, "")
		}
		if client.City != "" {
			p.CellFormat(95, 5, tr(client.City), "", 1, "L", false, 0, "")
		}
		contact := client.Phone
		if client.Email != "" {
			if contact != "" {
				contact += " | "
			}
			contact += client.Email
		}
		if contact != "" {
			p.CellFormat(95, 5, tr(contact), "", 1, "L", false, 0, "")
		}
	} else {
		p.CellFormat(95, 5, tr(fallbackNA), "", 1, "L", false, 0, "")
	}
	left := p.GetY()

	// Right column
	p.SetY(top)
	p.SetFont("Helvetica", "", 9)
	for _, dt := range details {
		p.SetX(marginLeft + 110)
		p.SetFont("Helvetica", "B", 9)
		p.CellFormat(30, 5, tr(dt.label), "", 0, "L", false, 0, "")
		p.SetFont("Helvetica", "", 9)
		p.CellFormat(0, 5, tr(dt.value), "", 1, "L", false, 0, "")
	}
	if y := p.GetY(); y < left {
		p.SetY(left)
	}
	p.Ln(4)
}

// transportBand draws the carrier details of a delivery note. Skipped when
// every field is empty.
func (r *Renderer) transportBand(d *doc, note *models.DeliveryNote) {
	if note.DriverName == "" && note.VehicleID == "" && note.Carrier == "" {
		return
	}
	p, tr := d.pdf, d.tr
	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(30, 64, 175)
	p.CellFormat(0, 5, "TRANSPORT", "", 1, "L", false, 0, "")
	p.SetTextColor(30, 30, 30)
	p.SetFont("Helvetica", "", 9)
	p.CellFormat(0, 5, tr(fmt.Sprintf("Chauffeur: %s | Véhicule: %s | Transporteur: %s",
		orDefault(note.DriverName, "-"), orDefault(note.VehicleID, "-"), orDefault(note.Carrier, "-"))), "", 1, "L", false, 0, "")
	p.Ln(3)
}

// totalsBand draws subtotal, tax, the optional stamp-tax line and the
// visually distinguished grand total.
func (r *Renderer) totalsBand(d *doc, subtotal, taxTotal, total, stampTax float64, stampApplies bool) {
	p, tr := d.pdf, d.tr
	labelX := marginLeft + 100
	rowW := pageWidth - marginLeft - labelX

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		p.SetX(labelX)
		p.SetFont("Helvetica", style, 10)
		p.CellFormat(rowW-38, 6, tr(label), "", 0, "L", false, 0, "")
		p.CellFormat(38, 6, tr(value), "", 1, "R", false, 0, "")
	}

	row("Total HT", formatAmount(subtotal), false)
	row("TVA", formatAmount(taxTotal), false)
	grand := total
	if stampApplies && stampTax > 0 {
		row("Droit de timbre", formatAmount(stampTax), false)
		grand = total + stampTax
	}
	p.SetX(labelX)
	p.SetFillColor(52, 73, 94)
	p.SetTextColor(255, 255, 255)
	p.SetFont("Helvetica", "B", 11)
	p.CellFormat(rowW-38, 8, tr("Total TTC"), "", 0, "L", true, 0, "")
	p.CellFormat(38, 8, tr(formatAmount(grand)), "", 1, "R", true, 0, "")
	p.SetTextColor(30, 30, 30)
	p.Ln(3)
}

// wordsBand spells the payable amount out in words. A conversion failure
// degrades to an empty phrase and the band is skipped.
func (r *Renderer) wordsBand(d *doc, amount float64) {
	phrase := words.Amount(amount)
	if phrase == "" {
		return
	}
	p, tr := d.pdf, d.tr
	p.SetFont("Helvetica", "I", 9)
	p.MultiCell(0, 5, tr("Arrêtée la présente facture à la somme de : "+phrase), "", "L", false)
	p.Ln(2)
}

// notesBand is omitted entirely when the document carries no notes, leaving
// the layout height unaffected.
func (r *Renderer) notesBand(d *doc, notes string) {
	if notes == "" {
		return
	}
	p, tr := d.pdf, d.tr
	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(30, 64, 175)
	p.CellFormat(0, 5, "NOTES", "", 1, "L", false, 0, "")
	p.SetTextColor(60, 60, 60)
	p.SetFont("Helvetica", "", 9)
	p.MultiCell(0, 5, tr(notes), "", "L", false)
	p.Ln(2)
}

// paymentsBand lists recorded payments on a final invoice; omitted when none.
func (r *Renderer) paymentsBand(d *doc, payments []models.Payment) {
	if len(payments) == 0 {
		return
	}
	p, tr := d.pdf, d.tr
	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(30, 64, 175)
	p.CellFormat(0, 5, tr("HISTORIQUE DES PAIEMENTS"), "", 1, "L", false, 0, "")
	p.SetTextColor(30, 30, 30)

	p.SetFont("Helvetica", "B", 8)
	p.SetFillColor(236, 240, 241)
	p.CellFormat(30, 6, tr("Date"), "1", 0, "C", true, 0, "")
	p.CellFormat(35, 6, tr("Mode"), "1", 0, "C", true, 0, "")
	p.CellFormat(45, 6, tr("Référence"), "1", 0, "C", true, 0, "")
	p.CellFormat(35, 6, tr("Montant"), "1", 1, "C", true, 0, "")
	p.SetFont("Helvetica", "", 8)
	for _, pay := range payments {
		p.CellFormat(30, 6, tr(formatDate(pay.Date)), "1", 0, "C", false, 0, "")
		p.CellFormat(35, 6, tr(paymentMethodLabel(pay.Method)), "1", 0, "C", false, 0, "")
		p.CellFormat(45, 6, tr(orDefault(pay.Reference, "-")), "1", 0, "C", false, 0, "")
		p.CellFormat(35, 6, tr(formatAmount(pay.Amount)), "1", 1, "R", false, 0, "")
	}
	p.Ln(3)
}

// signatureBand draws the handover signature placeholders of delivery notes.
func (r *Renderer) signatureBand(d *doc) {
	p, tr := d.pdf, d.tr
	p.Ln(8)
	y := p.GetY()
	p.SetFont("Helvetica", "", 9)
	p.Line(marginLeft, y+12, marginLeft+60, y+12)
	p.Line(pageWidth-marginLeft-60, y+12, pageWidth-marginLeft, y+12)
	p.SetY(y + 13)
	p.CellFormat(60, 5, tr("Signature expéditeur"), "", 0, "C", false, 0, "")
	p.SetX(pageWidth - marginLeft - 60)
	p.CellFormat(60, 5, tr("Signature destinataire"), "", 1, "C", false, 0, "")
}

func paymentMethodLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentMethodCash:
		return "Espèces"
	case models.PaymentMethodBankTransfer:
		return "Virement"
	case models.PaymentMethodCheck:
		return "Chèque"
	case models.PaymentMethodCard:
		return "Carte"
	case models.PaymentMethodOther:
		return "Autre"
	default:
		return string(m)
	}
}
