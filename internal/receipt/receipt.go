// Package receipt renders the fixed-width, human-readable receipt. The
// output is not meant to be re-parsed; it uses the exact pricing numbers
// the totals panel shows so the two artifacts never disagree.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cart_service/internal/domain"
)

const nameColumnWidth = 28

// Data carries everything the renderer needs. ID and GeneratedAt are
// injected by the caller so rendering stays deterministic under test.
type Data struct {
	ID          string
	GeneratedAt time.Time
	Lines       []domain.LineView
	Totals      domain.Totals
	TaxRate     decimal.Decimal
}

// Render produces the receipt text: a header with the generation timestamp,
// one row per line item, then the totals block in the order subtotal /
// discount / tax / shipping / total.
func Render(d Data) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "==== Receipt ====")
	fmt.Fprintf(&buf, "Receipt: %s\n", d.ID)
	fmt.Fprintf(&buf, "Date: %s\n", d.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-10s %-28s %5s %12s %12s\n", "ID", "Name", "Qty", "Unit", "Line Total")
	fmt.Fprintln(&buf, "-")
	for _, l := range d.Lines {
		fmt.Fprintf(&buf, "%-10s %-28s %5d %12s %12s\n",
			l.ProductID, abbreviate(l.Name, nameColumnWidth), l.Quantity,
			domain.FormatMoney(l.UnitPrice), domain.FormatMoney(l.LineTotal))
	}
	fmt.Fprintln(&buf, "-")

	vatLabel := fmt.Sprintf("VAT (%s%%):", d.TaxRate.Mul(decimal.NewFromInt(100)).String())
	discount := d.Totals.ItemDiscount.Add(d.Totals.ShippingDiscount)

	fmt.Fprintf(&buf, "%58s %12s\n", "Subtotal:", domain.FormatMoney(d.Totals.Subtotal))
	fmt.Fprintf(&buf, "%58s -%12s\n", "Discount:", domain.FormatMoney(discount))
	fmt.Fprintf(&buf, "%58s %12s\n", vatLabel, domain.FormatMoney(d.Totals.Tax))
	fmt.Fprintf(&buf, "%58s %12s\n", "Shipping:", domain.FormatMoney(d.Totals.ShippingFee))
	fmt.Fprintf(&buf, "%58s %12s\n", "TOTAL:", domain.FormatMoney(d.Totals.GrandTotal))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Thank you for shopping!")

	return buf.Bytes()
}

// abbreviate truncates s to max columns, marking the cut with an ellipsis.
func abbreviate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
