// Package pdf renders documents onto fixed-size A4 pages.
//
// Each renderer is a pure, single-pass transform from a fully hydrated
// document to the finished page description: the whole assembly happens in
// memory and either the complete byte slice or an error comes back, never a
// partial file.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/money"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	marginLeft = 14.0
	marginTop  = 12.0
	bottomGap  = 25.0
)

// Fallback placeholders for missing company fields. Absent values render as
// these literals, never blank.
const (
	fallbackCompanyName    = "YOUR COMPANY NAME"
	fallbackCompanyAddress = "Company Address"
	fallbackNA             = "N/A"
	fallbackCompanyEmail   = "info@company.com"
)

// Renderer builds PDF exports using the business identity for headers.
type Renderer struct {
	company *models.CompanyInfo
}

// NewRenderer returns a renderer for the given company identity. A nil
// company renders with the literal fallback placeholders.
func NewRenderer(company *models.CompanyInfo) *Renderer {
	return &Renderer{company: company}
}

// doc bundles the gofpdf handle with the cp1252 translator needed for the
// French labels on every document.
type doc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// newDoc creates an A4 portrait page with the shared footer: a thank-you
// line and "Page n/N" on every page, including pages added by table
// pagination.
func (r *Renderer) newDoc(footerNote string) *doc {
	p := gofpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetMargins(marginLeft, marginTop, marginLeft)
	p.SetAutoPageBreak(true, bottomGap)
	p.AliasNbPages("")
	p.SetFooterFunc(func() {
		p.SetY(-18)
		p.SetFont("Helvetica", "I", 8)
		p.SetTextColor(110, 110, 110)
		p.CellFormat(0, 5, tr(footerNote), "", 1, "C", false, 0, "")
		p.CellFormat(0, 5, tr(fmt.Sprintf("Page %d/{nb}", p.PageNo())), "", 0, "C", false, 0, "")
	})
	p.AddPage()
	return &doc{pdf: p, tr: tr}
}

func (d *doc) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// orDefault returns s unless it is empty.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// formatAmount renders a monetary value per the shared fiscal convention.
func formatAmount(v float64) string { return money.Format(v) }

// formatQty avoids trailing zeroes on integral quantities.
func formatQty(q int) string { return strconv.Itoa(q) }

// parseRGB parses an "r,g,b" color triple.
func parseRGB(s string) (r, g, b int, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	rr, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	gg, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	bb, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return rr, gg, bb, true
}

// bannerColor parses the "r,g,b" company banner triple, defaulting to the
// standard blue band.
func (r *Renderer) bannerColor() (int, int, int) {
	if r.company != nil {
		if rr, gg, bb, ok := parseRGB(r.company.BannerColor); ok {
			return rr, gg, bb
		}
	}
	return 41, 128, 185
}

// header draws the brand band, company block, optional logo, document badge,
// number and status badge. Returns nothing; the cursor is left below the
// header ready for the client band.
func (r *Renderer) header(d *doc, badge, number, status string) {
	p, tr := d.pdf, d.tr

	br, bg, bb := r.bannerColor()
	p.SetFillColor(br, bg, bb)
	p.Rect(0, 0, pageWidth, 6, "F")

	c := r.company
	name, addr := fallbackCompanyName, fallbackCompanyAddress
	taxID, reg, phone, email := fallbackNA, fallbackNA, fallbackNA, fallbackCompanyEmail
	logo := ""
	if c != nil {
		name = orDefault(c.BusinessName, name)
		addr = orDefault(c.Address, addr)
		taxID = orDefault(c.TaxID, taxID)
		reg = orDefault(c.CommerceRegNumber, reg)
		phone = orDefault(c.Phone, phone)
		email = orDefault(c.Email, email)
		logo = c.LogoPath
	}

	p.SetY(marginTop)
	p.SetFont("Helvetica", "B", 16)
	p.SetTextColor(30, 30, 30)
	p.CellFormat(0, 8, tr(name), "", 1, "C", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.SetTextColor(60, 60, 60)
	p.CellFormat(0, 5, tr(addr), "", 1, "C", false, 0, "")
	p.CellFormat(0, 5, tr(fmt.Sprintf("NIF: %s | RC: %s", taxID, reg)), "", 1, "C", false, 0, "")
	p.CellFormat(0, 5, tr(fmt.Sprintf("Tél: %s | Email: %s", phone, email)), "", 1, "C", false, 0, "")

	if logo != "" {
		if _, err := os.Stat(logo); err == nil {
			p.ImageOptions(logo, marginLeft, marginTop, 24, 0, false,
				gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	// Document badge + number on the left, status badge on the right.
	p.Ln(4)
	p.SetFont("Helvetica", "B", 13)
	p.SetTextColor(30, 30, 30)
	p.CellFormat(110, 8, tr(fmt.Sprintf("%s  %s", badge, number)), "", 0, "L", false, 0, "")

	sr, sg, sb := StatusColor(status)
	p.SetFillColor(sr, sg, sb)
	p.SetTextColor(255, 255, 255)
	p.SetFont("Helvetica", "B", 9)
	p.CellFormat(0, 8, tr(strings.ToUpper(strings.ReplaceAll(status, "_", " "))), "", 1, "C", true, 0, "")
	p.SetTextColor(30, 30, 30)
	p.Ln(2)
}

// StatusColor maps a document status to its badge color. The mapping is
// total: paid-like statuses are green, in-flight ones blue, terminated ones
// red, anything unrecognized gray.
func StatusColor(status string) (r, g, b int) {
	switch status {
	case string(models.InvoiceStatusPaid),
		string(models.ProformaStatusApproved),
		string(models.DeliveryStatusDelivered):
		return 39, 174, 96
	case string(models.InvoiceStatusUnpaid),
		string(models.InvoiceStatusPartiallyPaid),
		string(models.ProformaStatusSent),
		string(models.DeliveryStatusPending):
		return 41, 128, 185
	case string(models.InvoiceStatusCancelled),
		string(models.ProformaStatusRejected):
		return 192, 57, 43
	default:
		return 127, 140, 141
	}
}
