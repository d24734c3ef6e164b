package repository

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cart_service/internal/domain"
)

// InMemoryCatalogRepository is the static, read-only product registry.
// Construction seeds it once; no mutation operations exist after that.
type InMemoryCatalogRepository struct {
	products []domain.Product
	byID     map[string]int
	log      *logrus.Logger
}

var _ domain.CatalogRepository = (*InMemoryCatalogRepository)(nil)

// NewSeedCatalogRepository builds the catalog from the built-in seed set.
// Prices in rand (ZAR).
func NewSeedCatalogRepository(logger *logrus.Logger) *InMemoryCatalogRepository {
	repo := &InMemoryCatalogRepository{byID: map[string]int{}, log: logger}
	for _, p := range seedProducts() {
		repo.put(p)
	}
	logger.Infof("Catalog seeded with %d products", len(repo.products))
	return repo
}

// NewCSVCatalogRepository builds the catalog from a CSV document with the
// header id,name,category,unit_price. Records that fail validation are
// skipped and logged, not fatal; an unreadable document or an empty result
// is an error.
func NewCSVCatalogRepository(r io.Reader, logger *logrus.Logger) (*InMemoryCatalogRepository, error) {
	var records []*domain.Product
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	repo := &InMemoryCatalogRepository{byID: map[string]int{}, log: logger}
	skipped := 0
	for _, p := range records {
		if err := validateCatalogRecord(p); err != nil {
			logger.Warnf("Skipping invalid catalog record %q: %v", p.ID, err)
			skipped++
			continue
		}
		if _, dup := repo.byID[p.ID]; dup {
			logger.Warnf("Skipping duplicate catalog record %q", p.ID)
			skipped++
			continue
		}
		repo.put(*p)
	}
	if len(repo.products) == 0 {
		return nil, fmt.Errorf("catalog CSV contained no valid products (%d skipped)", skipped)
	}
	logger.Infof("Catalog loaded from CSV: %d products, %d skipped", len(repo.products), skipped)
	return repo, nil
}

func validateCatalogRecord(p *domain.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("product ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if p.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative")
	}
	return nil
}

func (r *InMemoryCatalogRepository) put(p domain.Product) {
	p.UnitPrice = domain.Round2(p.UnitPrice)
	r.byID[p.ID] = len(r.products)
	r.products = append(r.products, p)
}

func (r *InMemoryCatalogRepository) FindByID(id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, id)
	}
	p := r.products[i]
	return &p, nil
}

// ListAll returns the products in seed order.
func (r *InMemoryCatalogRepository) ListAll() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

// ListCategories returns the distinct category names, sorted.
func (r *InMemoryCatalogRepository) ListCategories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

func seedProducts() []domain.Product {
	mk := func(id, name, category, price string) domain.Product {
		return domain.Product{
			ID:        id,
			Name:      name,
			Category:  category,
			UnitPrice: decimal.RequireFromString(price),
		}
	}
	return []domain.Product{
		mk("EL-001", `Laptop 14" i5 16GB/512GB`, "Electronics", "12999.00"),
		mk("EL-002", `Smartphone 6.5" 128GB`, "Electronics", "6999.00"),
		mk("EL-003", "Bluetooth Headphones", "Electronics", "1299.00"),
		mk("EL-004", "USB-C Charger 65W", "Electronics", "499.00"),
		mk("EL-005", "Mechanical Keyboard", "Electronics", "1599.00"),

		mk("HM-101", "Air Fryer 5.5L", "Home", "1899.00"),
		mk("HM-102", "Electric Kettle 1.7L", "Home", "399.00"),
		mk("HM-103", "Vacuum Cleaner 1200W", "Home", "1499.00"),
		mk("HM-104", "LED Desk Lamp", "Home", "299.00"),
		mk("HM-105", "Cookware Set (5pc)", "Home", "999.00"),

		mk("FS-201", "Running Shoes", "Fashion", "1299.00"),
		mk("FS-202", "Denim Jacket", "Fashion", "899.00"),
		mk("FS-203", "Graphic T-Shirt", "Fashion", "249.00"),
		mk("FS-204", "Slim Fit Jeans", "Fashion", "599.00"),
		mk("FS-205", "Baseball Cap", "Fashion", "199.00"),

		mk("SP-301", "Football Size 5", "Sports", "349.00"),
		mk("SP-302", "Yoga Mat", "Sports", "299.00"),
		mk("SP-303", "Dumbbell 10kg", "Sports", "499.00"),
		mk("SP-304", "Skipping Rope", "Sports", "149.00"),
		mk("SP-305", "Water Bottle 1L", "Sports", "99.00"),

		mk("BK-401", "Data Structures in Java", "Books", "799.00"),
		mk("BK-402", "Python for Everyone", "Books", "699.00"),
		mk("BK-403", "Clean Code", "Books", "899.00"),
		mk("BK-404", "Design Patterns", "Books", "999.00"),
		mk("BK-405", "Intro to Algorithms", "Books", "1199.00"),
	}
}
