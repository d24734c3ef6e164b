package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog entry. UnitPrice carries exactly two
// fractional digits.
type Product struct {
	ID        string          `json:"id" csv:"id"`
	Name      string          `json:"name" csv:"name"`
	Category  string          `json:"category" csv:"category"`
	UnitPrice decimal.Decimal `json:"unit_price" csv:"unit_price"`
}

type CatalogRepository interface {
	FindByID(id string) (*Product, error)
	ListAll() []Product
	ListCategories() []string
}
