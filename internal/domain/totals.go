package domain

import "github.com/shopspring/decimal"

// Totals is the full monetary breakdown of a cart. It is derived on demand
// and never persisted. ShippingFee is the fee after the shipping discount
// has been subtracted, matching what the totals panel displays.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	ItemDiscount     decimal.Decimal `json:"item_discount"`
	ShippingDiscount decimal.Decimal `json:"shipping_discount"`
	Tax              decimal.Decimal `json:"tax"`
	ShippingFee      decimal.Decimal `json:"shipping_fee"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}
