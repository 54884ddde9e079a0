// Package money centralizes all monetary arithmetic for documents.
//
// Every derived amount stored on a line item or document header goes through
// this package so the rounding policy lives in exactly one place: line totals
// are computed in decimal arithmetic, the pre-tax amount and the tax portion
// are each rounded half-up to 2 decimals, and every aggregate is an exact sum
// of those rounded values. Nothing downstream rounds again.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// LineTotals computes the derived amounts for a single document line.
//
// Input normalization mirrors the form defaults of the domain: a quantity
// below 1 counts as 1, negative price/discount/tax count as 0, and the
// discount percentage is capped at 100.
func LineTotals(quantity int, unitPrice, discountPct, taxRatePct float64) (totalExcl, totalTax, total float64) {
	if quantity < 1 {
		quantity = 1
	}
	price := decimal.NewFromFloat(unitPrice)
	if price.IsNegative() {
		price = decimal.Zero
	}
	discount := decimal.NewFromFloat(discountPct)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(oneHundred) {
		discount = oneHundred
	}
	rate := decimal.NewFromFloat(taxRatePct)
	if rate.IsNegative() {
		rate = decimal.Zero
	}

	gross := decimal.NewFromInt(int64(quantity)).Mul(price)
	excl := gross.Mul(oneHundred.Sub(discount)).Div(oneHundred).Round(2)
	tax := excl.Mul(rate).Div(oneHundred).Round(2)

	totalExcl, _ = excl.Float64()
	totalTax, _ = tax.Float64()
	total, _ = excl.Add(tax).Float64()
	return totalExcl, totalTax, total
}

// Line is the minimal view of a document line needed for aggregation.
type Line interface {
	LineTotalExcl() float64
	LineTotalTax() float64
}

// DocumentTotals sums already-rounded line values into the document
// aggregates. subtotal+taxTotal == total holds exactly.
func DocumentTotals[L Line](lines []L) (subtotal, taxTotal, total float64) {
	sub := decimal.Zero
	tax := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(decimal.NewFromFloat(l.LineTotalExcl()))
		tax = tax.Add(decimal.NewFromFloat(l.LineTotalTax()))
	}
	subtotal, _ = sub.Float64()
	taxTotal, _ = tax.Float64()
	total, _ = sub.Add(tax).Float64()
	return subtotal, taxTotal, total
}

// Round applies the package rounding policy (half-up, 2 decimals) to a
// standalone amount, e.g. a stamp tax entered by hand.
func Round(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}

// Format renders an amount the way fiscal documents expect it: space-grouped
// thousands, comma decimals, currency suffix.
func Format(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := strings.Join(groups, " ") + "," + fracPart + " DA"
	if neg {
		return "-" + out
	}
	return out
}

// GrandTotal returns the payable amount for a document: the tax-inclusive
// total plus the stamp tax when the stamp tax applies. Stamp tax is only
// levied on cash payments; callers pass applies=false for any other method.
func GrandTotal(total, stampTax float64, applies bool) float64 {
	if !applies || stampTax <= 0 {
		return Round(total)
	}
	r, _ := decimal.NewFromFloat(total).Add(decimal.NewFromFloat(stampTax)).Round(2).Float64()
	return r
}
