package pdf

import (
	"fmt"

	"github.com/SYPclub/facture-flow/internal/models"
)

const footerThanks = "Merci pour votre confiance."

// Export filenames per document kind.
func ProformaFilename(number string) string { return fmt.Sprintf("Proforma_%s.pdf", number) }
func InvoiceFilename(number string) string  { return fmt.Sprintf("Invoice_%s.pdf", number) }
func DeliveryNoteFilename(number string) string {
	return fmt.Sprintf("DeliveryNote_%s.pdf", number)
}

// Proforma renders a proforma invoice.
func (r *Renderer) Proforma(pf *models.Proforma) (out []byte, err error) {
	defer recoverRender(&err)

	d := r.newDoc(footerThanks)
	r.header(d, "FACTURE PROFORMA", pf.Number, string(pf.Status))
	details := []detail{
		{"Date", formatDate(pf.IssueDate)},
		{"Échéance", formatDate(pf.DueDate)},
	}
	if pf.PaymentMethod != "" {
		details = append(details, detail{"Paiement", paymentMethodLabel(pf.PaymentMethod)})
	}
	r.clientBand(d, pf.Client, details)
	r.itemsTable(d, models.DocumentTypeProforma, pf.Items)
	stampApplies := pf.PaymentMethod == models.PaymentMethodCash && pf.StampTax > 0
	r.totalsBand(d, pf.Subtotal, pf.TaxTotal, pf.Total, pf.StampTax, stampApplies)
	grand := pf.Total
	if stampApplies {
		grand += pf.StampTax
	}
	r.wordsBand(d, grand)
	r.notesBand(d, pf.Notes)
	return d.output()
}

// Invoice renders a final invoice.
func (r *Renderer) Invoice(inv *models.FinalInvoice) (out []byte, err error) {
	defer recoverRender(&err)

	d := r.newDoc(footerThanks)
	r.header(d, "FACTURE", inv.Number, string(inv.Status))
	details := []detail{
		{"Date", formatDate(inv.IssueDate)},
		{"Échéance", formatDate(inv.DueDate)},
	}
	if inv.PaymentMethod != "" {
		details = append(details, detail{"Paiement", paymentMethodLabel(inv.PaymentMethod)})
	}
	if inv.PaidDate != nil {
		details = append(details, detail{"Payée le", formatDate(*inv.PaidDate)})
	}
	r.clientBand(d, inv.Client, details)
	r.itemsTable(d, models.DocumentTypeInvoice, inv.Items)
	r.totalsBand(d, inv.Subtotal, inv.TaxTotal, inv.Total, inv.StampTax, inv.StampTaxApplies())
	grand := inv.Total
	if inv.StampTaxApplies() {
		grand += inv.StampTax
	}
	r.wordsBand(d, grand)
	r.notesBand(d, inv.Notes)
	r.paymentsBand(d, inv.Payments)
	return d.output()
}

// DeliveryNote renders a delivery note: no monetary columns, transport and
// signature bands instead.
func (r *Renderer) DeliveryNote(note *models.DeliveryNote) (out []byte, err error) {
	defer recoverRender(&err)

	d := r.newDoc(footerThanks)
	r.header(d, "BON DE LIVRAISON", note.Number, string(note.Status))
	r.clientBand(d, note.Client, []detail{
		{"Date", formatDate(note.IssueDate)},
		{"Livraison", formatDate(note.DeliveryDate)},
	})
	r.transportBand(d, note)
	r.itemsTable(d, models.DocumentTypeDelivery, note.Items)
	r.notesBand(d, note.Notes)
	r.signatureBand(d)
	return d.output()
}

// recoverRender converts a renderer panic into an error so a failed export
// never takes the caller down and never leaves a partial file.
func recoverRender(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("pdf generation failed: %v", rec)
	}
}
