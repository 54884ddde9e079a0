package pdf

import (
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/SYPclub/facture-flow/internal/models"
	"github.com/SYPclub/facture-flow/internal/template"
)

// Templated renders a document through a designer layout instead of the
// built-in bands. The caller expands composites and resolves field tokens
// first; this pass only draws. The items-table placeholder is handed to the
// shared table writer at the node's recorded position, so templated and
// built-in documents paginate identically.
func (r *Renderer) Templated(docType string, layout *template.Layout, items []models.LineItem) (out []byte, err error) {
	defer recoverRender(&err)

	d := r.newDoc(footerThanks)
	for i := range layout.Nodes {
		r.renderNode(d, docType, &layout.Nodes[i], items, 0, 0)
	}
	return d.output()
}

func (r *Renderer) renderNode(d *doc, docType string, n *template.Node, items []models.LineItem, dx, dy float64) {
	p, tr := d.pdf, d.tr
	x, y := n.Left+dx, n.Top+dy

	switch n.Type {
	case template.NodeText:
		size := n.FontSize
		if size <= 0 {
			size = 10
		}
		style := ""
		if n.Bold {
			style = "B"
		}
		align := n.Align
		if align == "" {
			align = "L"
		}
		w := n.Width
		if w <= 0 {
			w = pageWidth - marginLeft - x
		}
		h := n.Height
		if h <= 0 {
			h = 5
		}
		p.SetFont("Helvetica", style, size)
		p.SetTextColor(30, 30, 30)
		p.SetXY(x, y)
		p.CellFormat(w, h, tr(n.Text), "", 0, align, false, 0, "")

	case template.NodeRect:
		if rr, gg, bb, ok := parseRGB(n.Fill); ok {
			p.SetFillColor(rr, gg, bb)
			p.Rect(x, y, n.Width, n.Height, "F")
		} else {
			p.SetDrawColor(30, 30, 30)
			p.Rect(x, y, n.Width, n.Height, "D")
		}

	case template.NodeLine:
		if rr, gg, bb, ok := parseRGB(n.Stroke); ok {
			p.SetDrawColor(rr, gg, bb)
		} else {
			p.SetDrawColor(30, 30, 30)
		}
		p.Line(x, y, x+n.Width, y+n.Height)

	case template.NodeImage:
		if n.Source != "" {
			if _, statErr := os.Stat(n.Source); statErr == nil {
				p.ImageOptions(n.Source, x, y, n.Width, n.Height, false,
					gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			}
		}

	case template.NodeGroup:
		for i := range n.Children {
			r.renderNode(d, docType, &n.Children[i], items, x, y)
		}

	case template.NodePlaceholder:
		if n.Name == template.CompositeItemsTable {
			r.itemsTableAt(d, docType, items, y)
		}
	}
}
