package domain

import "github.com/shopspring/decimal"

// CartLine is one cart row: a catalog product plus a quantity that is
// always >= 1 while the line exists.
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal is quantity × unit price, rounded to two decimals.
func (l CartLine) LineTotal() decimal.Decimal {
	return Round2(l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// LineView is the read-only row shape handed to display layers.
type LineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Cart is an ordered collection of lines keyed by product id. Insertion
// order is preserved for display; the same product never appears twice.
// A Cart is not safe for concurrent use; each instance must be owned and
// synchronized by its caller.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add merges qty into an existing line for the product (position unchanged)
// or appends a new line at the end.
func (c *Cart) Add(p Product, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return nil
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: qty})
	return nil
}

// Remove deletes the line if present; removing an absent id is a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity overwrites a line's quantity in place. A non-positive
// quantity means "delete the line". Absent ids are ignored.
func (c *Cart) SetQuantity(productID string, qty int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = qty
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns an ordered snapshot of the cart rows.
func (c *Cart) Lines() []LineView {
	out := make([]LineView, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, LineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	return out
}

// Subtotal sums the line totals. Each line total is already rounded, so the
// final Round2 only absorbs representation drift.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return Round2(sum)
}
