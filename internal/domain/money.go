package domain

import "github.com/shopspring/decimal"

// Round2 rounds to two fractional digits, half up. Every computed monetary
// step in the engine goes through this exactly once.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount the way the totals panel and the receipt
// display it (rand, two fractional digits).
func FormatMoney(d decimal.Decimal) string {
	return "R" + d.StringFixed(2)
}
