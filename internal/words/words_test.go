package words

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "zéro dinar"},
		{1, "un dinar"},
		{2, "deux dinars"},
		{21, "vingt et un dinars"},
		{71, "soixante et onze dinars"},
		{80, "quatre-vingts dinars"},
		{99, "quatre-vingt-dix-neuf dinars"},
		{100, "cent dinars"},
		{200, "deux cents dinars"},
		{321.3, "trois cent vingt et un dinars et trente centimes"},
		{642.6, "six cent quarante-deux dinars et soixante centimes"},
		{1000, "mille dinars"},
		{2500, "deux mille cinq cents dinars"},
		{1000000, "un million de dinars"},
		{2000000, "deux millions de dinars"},
		{1000000000, "un milliard de dinars"},
		{1200000, "un million deux cent mille dinars"},
		{1000000.5, "un million de dinars et cinquante centimes"},
		{0.5, "zéro dinar et cinquante centimes"},
		{1.01, "un dinar et un centime"},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); got != tt.want {
			t.Errorf("Amount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmount_WholeAmountOmitsCentimes(t *testing.T) {
	got := Amount(100.00)
	if got != "cent dinars" {
		t.Errorf("Amount(100.00) = %q, want no centimes clause", got)
	}
}

func TestAmount_DegradesToEmpty(t *testing.T) {
	for _, v := range []float64{-1, 1e13} {
		if got := Amount(v); got != "" {
			t.Errorf("Amount(%v) = %q, want empty string", v, got)
		}
	}
}
