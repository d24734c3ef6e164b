package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"cart_service/internal/domain"
)

// Discount is the two-axis effect of a promotional code. Exactly one axis
// is non-zero for every code in the table.
type Discount struct {
	Items    decimal.Decimal
	Shipping decimal.Decimal
}

type effectFunc func(subtotal, shippingFee decimal.Decimal) Discount

var (
	tenPercent    = decimal.RequireFromString("0.10")
	twentyPercent = decimal.RequireFromString("0.20")
	save20Cap     = decimal.RequireFromString("500.00")
	freeShipCap   = decimal.RequireFromString("150.00")
	studentFlat   = decimal.RequireFromString("50.00")
	studentFloor  = decimal.RequireFromString("500.00")
)

// ruleTable is the closed set of promotional codes, keyed by normalized
// code. Only a single code can be active at a time; there is no stacking.
var ruleTable = map[string]effectFunc{
	"SAVE10": func(subtotal, _ decimal.Decimal) Discount {
		return Discount{Items: domain.Round2(subtotal.Mul(tenPercent))}
	},
	"SAVE20": func(subtotal, _ decimal.Decimal) Discount {
		raw := domain.Round2(subtotal.Mul(twentyPercent))
		return Discount{Items: decimal.Min(raw, save20Cap)}
	},
	"FREESHIP": func(_, shippingFee decimal.Decimal) Discount {
		return Discount{Shipping: decimal.Min(shippingFee, freeShipCap)}
	},
	"STUDENT5": func(subtotal, _ decimal.Decimal) Discount {
		if subtotal.GreaterThanOrEqual(studentFloor) {
			return Discount{Items: studentFlat}
		}
		return Discount{}
	},
}

// NormalizeCode trims and uppercases a raw code string.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EvaluateCode maps a code to its discount pair. Unknown or empty codes
// yield zero on both axes; this is a total function, never an error.
func EvaluateCode(code string, subtotal, shippingFee decimal.Decimal) Discount {
	effect, ok := ruleTable[NormalizeCode(code)]
	if !ok {
		return Discount{}
	}
	return effect(subtotal, shippingFee)
}
