package pricing

import (
	"github.com/shopspring/decimal"

	"cart_service/internal/domain"
)

// Engine turns (subtotal, shipping fee, discount code) into a full monetary
// breakdown. Compute is pure and total for non-negative inputs.
//
// Rounding happens at exactly two points: inside the discount table and on
// the tax amount. The grand total is a plain sum of already-rounded parts;
// rounding anywhere else diverges by a cent on boundary inputs.
type Engine struct {
	taxRate decimal.Decimal
}

func NewEngine(taxRate decimal.Decimal) *Engine {
	return &Engine{taxRate: taxRate}
}

func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

func (e *Engine) Compute(subtotal, shippingFee decimal.Decimal, code string) domain.Totals {
	d := EvaluateCode(code, subtotal, shippingFee)

	// The clamp is mandatory: a discount must never push the taxable base
	// negative, however the item discount was computed.
	taxableBase := decimal.Max(subtotal.Sub(d.Items), decimal.Zero)
	tax := domain.Round2(taxableBase.Mul(e.taxRate))
	shippingAfter := decimal.Max(shippingFee.Sub(d.Shipping), decimal.Zero)

	return domain.Totals{
		Subtotal:         subtotal,
		ItemDiscount:     d.Items,
		ShippingDiscount: d.Shipping,
		Tax:              tax,
		ShippingFee:      shippingAfter,
		GrandTotal:       taxableBase.Add(tax).Add(shippingAfter),
	}
}
