package template

import (
	"regexp"
	"time"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
	"github.com/SYPclub/facture-flow/internal/words"
)

// Fields maps dot-path token names to their rendered values.
type Fields map[string]string

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// Resolve substitutes every known {{token}} in s. An unknown token is left
// verbatim so a typo in a template is visible on the document instead of
// silently disappearing.
func (f Fields) Resolve(s string) string {
	return tokenPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := tokenPattern.FindStringSubmatch(m)[1]
		if v, ok := f[key]; ok {
			return v
		}
		return m
	})
}

// ResolveLayout returns a copy of the layout with every text node resolved.
// The input layout is never mutated; stored templates stay token-bearing.
func (f Fields) ResolveLayout(l *Layout) *Layout {
	out := &Layout{Nodes: resolveNodes(f, l.Nodes)}
	return out
}

func resolveNodes(f Fields, nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.Type == NodeText {
			n.Text = f.Resolve(n.Text)
		}
		if len(n.Children) > 0 {
			n.Children = resolveNodes(f, n.Children)
		}
		out[i] = n
	}
	return out
}

const fieldDateLayout = "02/01/2006"

func formatFieldDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(fieldDateLayout)
}

// baseFields fills the company and client token groups shared by every
// document kind. Missing company values fall back to the same literals the
// built-in renderer prints.
func baseFields(company *models.CompanyInfo, client *models.Client) Fields {
	f := Fields{
		"company.name":    "YOUR COMPANY NAME",
		"company.address": "Company Address",
		"company.taxId":   "N/A",
		"company.rc":      "N/A",
		"company.phone":   "N/A",
		"company.email":   "info@company.com",
	}
	if company != nil {
		setIfNotEmpty(f, "company.name", company.BusinessName)
		setIfNotEmpty(f, "company.address", company.Address)
		setIfNotEmpty(f, "company.taxId", company.TaxID)
		setIfNotEmpty(f, "company.rc", company.CommerceRegNumber)
		setIfNotEmpty(f, "company.phone", company.Phone)
		setIfNotEmpty(f, "company.email", company.Email)
	}
	if client != nil {
		f["client.name"] = client.Name
		f["client.address"] = client.Address
		f["client.city"] = client.City
		f["client.phone"] = client.Phone
		f["client.email"] = client.Email
		f["client.taxId"] = client.TaxID
		f["client.rc"] = client.RC
	}
	return f
}

func setIfNotEmpty(f Fields, key, val string) {
	if val != "" {
		f[key] = val
	}
}

func totalsFields(f Fields, subtotal, taxTotal, total, stampTax float64, stampApplies bool) {
	f["subtotal"] = money.Format(subtotal)
	f["taxTotal"] = money.Format(taxTotal)
	grand := money.GrandTotal(total, stampTax, stampApplies)
	f["total"] = money.Format(grand)
	f["total_in_words"] = words.Amount(grand)
	if stampApplies {
		f["stampTax"] = money.Format(stampTax)
	} else {
		f["stampTax"] = ""
	}
}

// ProformaFields builds the token map for a proforma invoice.
func ProformaFields(pf *models.Proforma, company *models.CompanyInfo) Fields {
	f := baseFields(company, pf.Client)
	f["number"] = pf.Number
	f["status"] = string(pf.Status)
	f["date"] = formatFieldDate(pf.IssueDate)
	f["dueDate"] = formatFieldDate(pf.DueDate)
	f["notes"] = pf.Notes
	stampApplies := pf.PaymentMethod == models.PaymentMethodCash && pf.StampTax > 0
	totalsFields(f, pf.Subtotal, pf.TaxTotal, pf.Total, pf.StampTax, stampApplies)
	return f
}

// InvoiceFields builds the token map for a final invoice.
func InvoiceFields(inv *models.FinalInvoice, company *models.CompanyInfo) Fields {
	f := baseFields(company, inv.Client)
	f["number"] = inv.Number
	f["status"] = string(inv.Status)
	f["date"] = formatFieldDate(inv.IssueDate)
	f["dueDate"] = formatFieldDate(inv.DueDate)
	f["notes"] = inv.Notes
	f["amountPaid"] = money.Format(inv.AmountPaid)
	f["outstanding"] = money.Format(inv.Outstanding())
	totalsFields(f, inv.Subtotal, inv.TaxTotal, inv.Total, inv.StampTax, inv.StampTaxApplies())
	return f
}

// DeliveryFields builds the token map for a delivery note. Monetary tokens
// are intentionally absent; a delivery template referencing them keeps the
// literal tokens, matching the unresolved-path rule.
func DeliveryFields(note *models.DeliveryNote, company *models.CompanyInfo) Fields {
	f := baseFields(company, note.Client)
	f["number"] = note.Number
	f["status"] = string(note.Status)
	f["date"] = formatFieldDate(note.IssueDate)
	f["deliveryDate"] = formatFieldDate(note.DeliveryDate)
	f["notes"] = note.Notes
	f["driverName"] = note.DriverName
	f["vehicleId"] = note.VehicleID
	f["carrier"] = note.Carrier
	return f
}
