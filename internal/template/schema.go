// Package template stores and resolves designer-authored document layouts.
//
// A layout is a flat tree of typed nodes with absolute millimeter geometry.
// The store hands layouts out per document type; the substitution engine
// fills {{dot.path}} tokens from a field map built off the document, and the
// PDF layer draws the resolved tree. Layouts only affect presentation, never
// amounts or document state.
package template

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeType discriminates layout tree nodes.
type NodeType string

const (
	NodeText        NodeType = "text"
	NodeRect        NodeType = "rect"
	NodeLine        NodeType = "line"
	NodeImage       NodeType = "image"
	NodeGroup       NodeType = "group"
	NodePlaceholder NodeType = "placeholder"
)

// Named composite placeholders. A placeholder node carrying one of these
// names expands into a prebuilt group of token-bearing text nodes, except
// for the items table which is drawn by the table writer at the node's
// position.
const (
	CompositeClientInfo     = "client-info"
	CompositeInvoiceDetails = "invoice-details"
	CompositeItemsTable     = "items-table"
	CompositeTotalsSection  = "totals-section"
)

// Node is one element of a layout. Geometry is absolute on the page for
// top-level nodes and relative to the parent for children of a group.
type Node struct {
	Type   NodeType `json:"type"`
	Left   float64  `json:"left"`
	Top    float64  `json:"top"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`

	// text nodes
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Align    string  `json:"align,omitempty"` // L, C or R

	// rect and line nodes, "r,g,b"
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`

	// image nodes
	Source string `json:"source,omitempty"`

	// placeholder nodes
	Name string `json:"name,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// Layout is the root of a stored template.
type Layout struct {
	Nodes []Node `json:"nodes"`
}

// ParseLayout decodes and validates serialized layout JSON.
func ParseLayout(data string) (*Layout, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := validateNodes(l.Nodes, "nodes"); err != nil {
		return nil, err
	}
	return &l, nil
}

// Encode serializes the layout for storage.
func (l *Layout) Encode() (string, error) {
	out, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("encode layout: %w", err)
	}
	return string(out), nil
}

func validateNodes(nodes []Node, path string) error {
	for i := range nodes {
		n := &nodes[i]
		at := fmt.Sprintf("%s[%d]", path, i)
		switch n.Type {
		case NodeText, NodeRect, NodeLine, NodeImage:
		case NodeGroup:
			if err := validateNodes(n.Children, at+".children"); err != nil {
				return err
			}
		case NodePlaceholder:
			if n.Name == "" {
				return fmt.Errorf("%s: placeholder without a name", at)
			}
		default:
			return fmt.Errorf("%s: unknown node type %q", at, n.Type)
		}
	}
	return nil
}
