package pricing

import (
	"errors"
	"fmt"

	"github.com/geekyathlete/poster-shop/internal/tax"
)

// Money represents a monetary value stored in minor units (cents).
type Money = int64

// Pricing constants for the shop. The three posters share one unit
// price; orders below the minimum purchase are rejected.
const (
	DefaultUnitPrice   Money = 499
	DefaultMinPurchase Money = 1000
)

// ErrUnknownProvince is returned when the province has no tax table
// entry. The form validator checks membership up front, so the HTTP
// path never reaches this.
var ErrUnknownProvince = errors.New("pricing: unknown province")

// BelowMinimumError rejects an order whose subtotal did not reach the
// minimum purchase value. It carries the computed subtotal so callers
// can echo it back to the customer.
type BelowMinimumError struct {
	Subtotal Money
	Minimum  Money
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("MINIMUM PURCHASE OF CA$%s REQUIRED. YOU HAD A PURCHASE OF CA$%s.",
		FormatMoney(e.Minimum), FormatMoney(e.Subtotal))
}

// Line is one poster's priced line item.
type Line struct {
	UnitPrice Money
	Qty       int
	Total     Money
}

// Quote aggregates the computed pricing components for one order.
type Quote struct {
	Lines      [3]Line
	Subtotal   Money
	TaxRateBps int
	Tax        Money
	Total      Money
}

// Engine computes order totals. It is a pure function of its read-only
// configuration; a single instance is shared across requests.
type Engine struct {
	UnitPrice   Money
	MinPurchase Money
	Taxes       *tax.Table
}

// DefaultEngine returns an engine with the shop's fixed unit price and
// minimum purchase value.
func DefaultEngine(taxes *tax.Table) Engine {
	return Engine{UnitPrice: DefaultUnitPrice, MinPurchase: DefaultMinPurchase, Taxes: taxes}
}

// Quote prices the three quantities for the given province. Quantities
// must be non-negative; the validator guarantees this on the HTTP path.
func (e Engine) Quote(qty [3]int, province string) (Quote, error) {
	q := Quote{}
	for i, n := range qty {
		if n < 0 {
			n = 0
		}
		line := Line{UnitPrice: e.UnitPrice, Qty: n, Total: Money(n) * e.UnitPrice}
		q.Lines[i] = line
		q.Subtotal += line.Total
	}
	if q.Subtotal < e.MinPurchase {
		return Quote{}, &BelowMinimumError{Subtotal: q.Subtotal, Minimum: e.MinPurchase}
	}
	bps, ok := e.Taxes.Rate(province)
	if !ok {
		return Quote{}, ErrUnknownProvince
	}
	q.TaxRateBps = bps
	q.Tax = taxAmount(q.Subtotal, bps)
	q.Total = q.Subtotal + q.Tax
	return q, nil
}

// taxAmount applies a basis-point rate, rounding half-up to the cent.
func taxAmount(subtotal Money, bps int) Money {
	return (subtotal*Money(bps) + 5000) / 10000
}

// FormatMoney renders cents as a two-decimal currency string.
func FormatMoney(m Money) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
