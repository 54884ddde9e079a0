package money

import "testing"

type testLine struct {
	excl float64
	tax  float64
}

func (l testLine) LineTotalExcl() float64 { return l.excl }
func (l testLine) LineTotalTax() float64  { return l.tax }

func TestLineTotals(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice float64
		discount  float64
		taxRate   float64
		wantExcl  float64
		wantTax   float64
		wantTotal float64
	}{
		{"reference scenario", 3, 100, 10, 19, 270, 51.3, 321.3},
		{"no discount no tax", 2, 50, 0, 0, 100, 0, 100},
		{"full discount", 4, 25, 100, 19, 0, 0, 0},
		{"tax exempt line", 1, 1000, 5, 0, 950, 0, 950},
		{"rounding at line boundary", 1, 33.335, 0, 19, 33.34, 6.33, 39.67},
		{"zero price", 3, 0, 10, 19, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			excl, tax, total := LineTotals(tt.quantity, tt.unitPrice, tt.discount, tt.taxRate)
			if excl != tt.wantExcl || tax != tt.wantTax || total != tt.wantTotal {
				t.Errorf("LineTotals() = (%v, %v, %v), want (%v, %v, %v)",
					excl, tax, total, tt.wantExcl, tt.wantTax, tt.wantTotal)
			}
		})
	}
}

func TestLineTotals_InputNormalization(t *testing.T) {
	// quantity below 1 counts as 1
	excl, _, _ := LineTotals(0, 100, 0, 0)
	if excl != 100 {
		t.Errorf("quantity 0: excl = %v, want 100", excl)
	}
	excl, _, _ = LineTotals(-5, 100, 0, 0)
	if excl != 100 {
		t.Errorf("negative quantity: excl = %v, want 100", excl)
	}
	// discount is clamped to [0,100]
	excl, _, _ = LineTotals(1, 100, 150, 0)
	if excl != 0 {
		t.Errorf("discount 150: excl = %v, want 0", excl)
	}
	excl, _, _ = LineTotals(1, 100, -10, 0)
	if excl != 100 {
		t.Errorf("discount -10: excl = %v, want 100", excl)
	}
	// negative rates count as 0
	_, tax, _ := LineTotals(1, 100, 0, -19)
	if tax != 0 {
		t.Errorf("negative tax rate: tax = %v, want 0", tax)
	}
}

func TestLineTotals_Invariant(t *testing.T) {
	cases := [][4]float64{
		{3, 100, 10, 19},
		{7, 19.99, 12.5, 9},
		{1, 0.01, 0, 19},
		{120, 1234.56, 33, 21},
	}
	for _, c := range cases {
		excl, tax, total := LineTotals(int(c[0]), c[1], c[2], c[3])
		if total != excl+tax {
			t.Errorf("LineTotals(%v): total %v != excl %v + tax %v", c, total, excl, tax)
		}
	}
}

func TestDocumentTotals(t *testing.T) {
	// two reference-scenario items
	lines := []testLine{{270, 51.3}, {270, 51.3}}
	sub, tax, total := DocumentTotals(lines)
	if sub != 540 || tax != 102.6 || total != 642.6 {
		t.Errorf("DocumentTotals() = (%v, %v, %v), want (540, 102.6, 642.6)", sub, tax, total)
	}
}

func TestDocumentTotals_Empty(t *testing.T) {
	sub, tax, total := DocumentTotals([]testLine{})
	if sub != 0 || tax != 0 || total != 0 {
		t.Errorf("empty document: got (%v, %v, %v)", sub, tax, total)
	}
}

func TestGrandTotal(t *testing.T) {
	if got := GrandTotal(642.6, 40, true); got != 682.6 {
		t.Errorf("cash with stamp tax: got %v, want 682.6", got)
	}
	if got := GrandTotal(642.6, 40, false); got != 642.6 {
		t.Errorf("non-cash ignores stamp tax: got %v", got)
	}
	if got := GrandTotal(642.6, 0, true); got != 642.6 {
		t.Errorf("zero stamp tax: got %v", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0,00 DA"},
		{321.3, "321,30 DA"},
		{1234.5, "1 234,50 DA"},
		{1234567.89, "1 234 567,89 DA"},
		{-42, "-42,00 DA"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
