package template

// ExpandComposites returns a copy of the layout where named composite
// placeholders are replaced by prebuilt groups of token-bearing text nodes
// positioned at the placeholder. The items-table placeholder passes through
// untouched; the table writer draws it. Placeholders with unknown names also
// pass through and are skipped at render time.
func ExpandComposites(l *Layout) *Layout {
	return &Layout{Nodes: expandNodes(l.Nodes)}
}

func expandNodes(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Children) > 0 {
			n.Children = expandNodes(n.Children)
		}
		if n.Type == NodePlaceholder {
			if g, ok := compositeGroup(n.Name); ok {
				g.Left, g.Top = n.Left, n.Top
				out = append(out, g)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func compositeGroup(name string) (Node, bool) {
	var children []Node
	switch name {
	case CompositeClientInfo:
		children = textStack(0, 0, 80,
			line{"CLIENT", 9, true},
			line{"{{client.name}}", 10, true},
			line{"NIF: {{client.taxId}}", 9, false},
			line{"{{client.address}}", 9, false},
			line{"{{client.city}}", 9, false},
			line{"{{client.phone}} | {{client.email}}", 9, false},
		)
	case CompositeInvoiceDetails:
		children = textStack(0, 0, 70,
			line{"N° {{number}}", 10, true},
			line{"Date: {{date}}", 9, false},
			line{"Échéance: {{dueDate}}", 9, false},
		)
	case CompositeTotalsSection:
		children = textStack(0, 0, 70,
			line{"Total HT: {{subtotal}}", 10, false},
			line{"TVA: {{taxTotal}}", 10, false},
			line{"Total TTC: {{total}}", 11, true},
		)
	default:
		return Node{}, false
	}
	return Node{Type: NodeGroup, Children: children}, true
}

type line struct {
	text string
	size float64
	bold bool
}

func textStack(left, top, width float64, lines ...line) []Node {
	nodes := make([]Node, len(lines))
	y := top
	for i, ln := range lines {
		nodes[i] = Node{
			Type:     NodeText,
			Left:     left,
			Top:      y,
			Width:    width,
			Height:   5,
			Text:     ln.text,
			FontSize: ln.size,
			Bold:     ln.bold,
		}
		y += 5
	}
	return nodes
}
