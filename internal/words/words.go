// Package words renders monetary amounts as French phrases for the
// "arrêtée la présente facture à la somme de ..." line on fiscal documents.
package words

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const maxAmount = 1e12 // anything above is refused rather than misread

var (
	units = []string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept",
		"huit", "neuf", "dix", "onze", "douze", "treize", "quatorze", "quinze",
		"seize", "dix-sept", "dix-huit", "dix-neuf"}
	tens = []string{"", "dix", "vingt", "trente", "quarante", "cinquante",
		"soixante", "soixante-dix", "quatre-vingt", "quatre-vingt-dix"}
)

// Amount spells out a monetary amount in Algerian dinars, e.g.
//
//	Amount(321.30) == "trois cent vingt et un dinars et trente centimes"
//
// Zero yields the fixed phrase "zéro dinar". A whole amount carries no
// centimes clause. Amounts that cannot be converted (negative, NaN, or
// beyond the supported range) degrade to the empty string; this is a
// display-only helper and must never fail an export.
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= maxAmount {
		return ""
	}
	d := decimal.NewFromFloat(v).Round(2)
	dinars := d.IntPart()
	centimes := d.Sub(decimal.NewFromInt(dinars)).Mul(decimal.NewFromInt(100)).IntPart()

	if dinars == 0 && centimes == 0 {
		return "zéro dinar"
	}

	var b strings.Builder
	if dinars == 0 {
		b.WriteString("zéro dinar")
	} else {
		spelled := cardinal(dinars)
		b.WriteString(spelled)
		switch {
		case dinars == 1:
			b.WriteString(" dinar")
		case needsDe(spelled):
			// "un million de dinars", never "un million dinars"
			b.WriteString(" de dinars")
		default:
			b.WriteString(" dinars")
		}
	}
	if centimes > 0 {
		b.WriteString(" et ")
		b.WriteString(cardinal(centimes))
		if centimes == 1 {
			b.WriteString(" centime")
		} else {
			b.WriteString(" centimes")
		}
	}
	return b.String()
}

// needsDe reports whether the spelled number takes "de" before the currency
// noun. French requires it after the noun-like scales million and milliard
// when nothing follows them ("un million de dinars", but "un million deux
// cents dinars").
func needsDe(spelled string) bool {
	return strings.HasSuffix(spelled, "million") || strings.HasSuffix(spelled, "millions") ||
		strings.HasSuffix(spelled, "milliard") || strings.HasSuffix(spelled, "milliards")
}

// cardinal spells a positive integer in French.
func cardinal(n int64) string {
	switch {
	case n < 20:
		return units[n]
	case n < 100:
		return belowHundred(n)
	case n < 1000:
		return belowThousand(n)
	case n < 1_000_000:
		return scaled(n, 1000, "mille", "mille") // mille is invariable
	case n < 1_000_000_000:
		return scaled(n, 1_000_000, "million", "millions")
	default:
		return scaled(n, 1_000_000_000, "milliard", "milliards")
	}
}

// belowHundred handles 20..99 plus the teens folded into the 70s and 90s.
func belowHundred(n int64) string {
	if n < 20 {
		return units[n]
	}
	t, u := n/10, n%10
	switch t {
	case 7, 9: // soixante-dix..soixante-dix-neuf, quatre-vingt-dix..
		base := tens[t-1]
		rest := units[10+u]
		if t == 7 && u == 1 {
			return base + " et onze"
		}
		return base + "-" + rest
	}
	if u == 0 {
		if t == 8 {
			return "quatre-vingts"
		}
		return tens[t]
	}
	if u == 1 && t != 8 {
		return tens[t] + " et un"
	}
	return tens[t] + "-" + units[u]
}

func belowThousand(n int64) string {
	h, rest := n/100, n%100
	var head string
	switch {
	case h == 1:
		head = "cent"
	case rest == 0:
		head = units[h] + " cents"
	default:
		head = units[h] + " cent"
	}
	if rest == 0 {
		return head
	}
	return head + " " + belowHundred(rest)
}

func scaled(n, scale int64, singular, plural string) string {
	count, rest := n/scale, n%scale
	var head string
	switch {
	case count == 1 && singular == "mille":
		head = "mille"
	case count == 1:
		head = "un " + singular
	default:
		head = cardinal(count) + " " + plural
	}
	if rest == 0 {
		return head
	}
	return head + " " + cardinal(rest)
}
