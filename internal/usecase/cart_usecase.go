package usecase

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cart_service/internal/domain"
	"cart_service/internal/pricing"
	"cart_service/internal/receipt"
	"cart_service/internal/repository"
	"cart_service/pkg/storage"
)

// CartView is the cart state handed to the delivery layer: the ordered
// lines plus the current totals, always computed together.
type CartView struct {
	Lines  []domain.LineView `json:"lines"`
	Totals domain.Totals     `json:"totals"`
}

type CartUseCase interface {
	ListProducts(query, category string) []domain.Product
	ListCategories() []string

	AddItem(productID string, qty int) (CartView, error)
	RemoveItem(productID string) CartView
	SetItemQuantity(productID string, qty int) CartView
	UpdateQuantities(updates map[string]int) CartView
	ClearCart() CartView
	View() CartView

	GetSettings() repository.Settings
	UpdateSettings(code string, shippingFee decimal.Decimal) (CartView, error)

	SaveCart() error
	LoadCart() (CartView, int, error)
	Checkout() (domain.Totals, error)
	ExportReceipt() ([]byte, error)
}

// cartUseCase owns the single session cart. The cart itself has no internal
// locking, so this layer serializes all access for its HTTP host.
type cartUseCase struct {
	mu sync.Mutex

	catalog       domain.CatalogRepository
	engine        *pricing.Engine
	cartCodec     *repository.CartSnapshotCodec
	settingsCodec *repository.SettingsCodec

	cart     *domain.Cart
	settings repository.Settings

	cartPath     string
	settingsPath string

	log *logrus.Logger
}

var _ CartUseCase = (*cartUseCase)(nil)

func NewCartUseCase(
	catalog domain.CatalogRepository,
	engine *pricing.Engine,
	cartCodec *repository.CartSnapshotCodec,
	settingsCodec *repository.SettingsCodec,
	cartPath, settingsPath string,
	logger *logrus.Logger,
) CartUseCase {
	return &cartUseCase{
		catalog:       catalog,
		engine:        engine,
		cartCodec:     cartCodec,
		settingsCodec: settingsCodec,
		cart:          domain.NewCart(),
		settings:      repository.DefaultSettings(),
		cartPath:      cartPath,
		settingsPath:  settingsPath,
		log:           logger,
	}
}

// view must be called with the mutex held.
func (uc *cartUseCase) view() CartView {
	return CartView{
		Lines:  uc.cart.Lines(),
		Totals: uc.engine.Compute(uc.cart.Subtotal(), uc.settings.ShippingFee, uc.settings.DiscountCode),
	}
}

func (uc *cartUseCase) ListProducts(query, category string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	all := uc.catalog.ListAll()
	if q == "" && (category == "" || category == "All") {
		return all
	}
	var out []domain.Product
	for _, p := range all {
		matchText := q == "" ||
			strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Name), q)
		matchCat := category == "" || category == "All" || category == p.Category
		if matchText && matchCat {
			out = append(out, p)
		}
	}
	uc.log.Infof("Use Case: Filtered catalog (query=%q, category=%q): %d of %d products", query, category, len(out), len(all))
	return out
}

func (uc *cartUseCase) ListCategories() []string {
	return uc.catalog.ListCategories()
}

func (uc *cartUseCase) AddItem(productID string, qty int) (CartView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if qty < 1 {
		uc.log.Warnf("Use Case: Rejected add of product %s with quantity %d", productID, qty)
		return uc.view(), domain.ErrInvalidQuantity
	}
	product, err := uc.catalog.FindByID(productID)
	if err != nil {
		uc.log.Warnf("Use Case: Add failed, product %s not in catalog", productID)
		return uc.view(), err
	}
	if err := uc.cart.Add(*product, qty); err != nil {
		return uc.view(), err
	}
	uc.log.Infof("Use Case: Added %d x %s to cart (%d lines)", qty, product.Name, uc.cart.Len())
	return uc.view(), nil
}

func (uc *cartUseCase) RemoveItem(productID string) CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cart.Remove(productID)
	uc.log.Infof("Use Case: Removed product %s from cart (%d lines)", productID, uc.cart.Len())
	return uc.view()
}

func (uc *cartUseCase) SetItemQuantity(productID string, qty int) CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cart.SetQuantity(productID, qty)
	uc.log.Infof("Use Case: Set quantity of product %s to %d (%d lines)", productID, qty, uc.cart.Len())
	return uc.view()
}

// UpdateQuantities applies a batch of in-place quantity edits, one per
// affected row. A non-positive quantity deletes the row.
func (uc *cartUseCase) UpdateQuantities(updates map[string]int) CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for id, qty := range updates {
		uc.cart.SetQuantity(id, qty)
	}
	uc.log.Infof("Use Case: Applied %d quantity updates (%d lines remain)", len(updates), uc.cart.Len())
	return uc.view()
}

func (uc *cartUseCase) ClearCart() CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cart.Clear()
	uc.log.Info("Use Case: Cart cleared")
	return uc.view()
}

func (uc *cartUseCase) View() CartView {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.view()
}

func (uc *cartUseCase) GetSettings() repository.Settings {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.settings
}

// UpdateSettings replaces the session discount code and shipping fee and
// returns the re-evaluated cart. Unknown codes are kept as typed; they
// simply price as "no effect".
func (uc *cartUseCase) UpdateSettings(code string, shippingFee decimal.Decimal) (CartView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if shippingFee.IsNegative() {
		uc.log.Warnf("Use Case: Rejected negative shipping fee %s", shippingFee)
		return uc.view(), domain.ErrInvalidShipping
	}
	uc.settings.DiscountCode = code
	uc.settings.ShippingFee = domain.Round2(shippingFee)
	uc.log.Infof("Use Case: Settings updated (code=%q, shipping=%s)", code, uc.settings.ShippingFee.StringFixed(2))
	return uc.view(), nil
}

// SaveCart persists the cart snapshot and the settings snapshot. On any
// write failure the in-memory state is left unchanged and the error is
// surfaced to the caller.
func (uc *cartUseCase) SaveCart() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	data := uc.cartCodec.Encode(repository.RecordsFromCart(uc.cart))
	if err := storage.Write(uc.cartPath, data); err != nil {
		uc.log.Errorf("Use Case: Failed to save cart: %v", err)
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if err := storage.Write(uc.settingsPath, uc.settingsCodec.Encode(uc.settings)); err != nil {
		uc.log.Errorf("Use Case: Failed to save settings: %v", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	uc.log.Infof("Use Case: Cart saved to %s (%d lines)", uc.cartPath, uc.cart.Len())
	return nil
}

// LoadCart replaces the session cart with the persisted snapshot. The
// replacement is built into a fresh cart and only swapped in on full
// success, so a failed load never leaves the visible cart partially
// overwritten. Returns the number of skipped records.
func (uc *cartUseCase) LoadCart() (CartView, int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !storage.Exists(uc.cartPath) {
		return uc.view(), 0, domain.ErrNoSavedCart
	}
	data, err := storage.Read(uc.cartPath)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to load cart: %v", err)
		return uc.view(), 0, fmt.Errorf("failed to load cart: %w", err)
	}

	records, skipped := uc.cartCodec.Decode(data)
	fresh := domain.NewCart()
	for _, r := range records {
		product, err := uc.catalog.FindByID(r.ProductID)
		if err != nil {
			skipped++
			continue
		}
		if err := fresh.Add(*product, r.Quantity); err != nil {
			skipped++
		}
	}
	uc.cart = fresh

	uc.settings = repository.DefaultSettings()
	if storage.Exists(uc.settingsPath) {
		if raw, err := storage.Read(uc.settingsPath); err != nil {
			uc.log.Warnf("Use Case: Settings snapshot unreadable, using defaults: %v", err)
		} else {
			uc.settings = uc.settingsCodec.Decode(raw)
		}
	}

	if skipped > 0 {
		uc.log.Warnf("Use Case: Loaded cart from %s (%d lines, %d records skipped)", uc.cartPath, uc.cart.Len(), skipped)
	} else {
		uc.log.Infof("Use Case: Loaded cart from %s (%d lines)", uc.cartPath, uc.cart.Len())
	}
	return uc.view(), skipped, nil
}

// Checkout rejects an empty cart, otherwise persists the current state and
// returns the final totals.
func (uc *cartUseCase) Checkout() (domain.Totals, error) {
	uc.mu.Lock()
	if uc.cart.IsEmpty() {
		uc.mu.Unlock()
		uc.log.Warn("Use Case: Checkout rejected, cart is empty")
		return domain.Totals{}, domain.ErrEmptyCart
	}
	totals := uc.view().Totals
	uc.mu.Unlock()

	if err := uc.SaveCart(); err != nil {
		return domain.Totals{}, err
	}
	uc.log.Infof("Use Case: Checkout complete, total %s", domain.FormatMoney(totals.GrandTotal))
	return totals, nil
}

// ExportReceipt renders the current cart and totals as receipt text.
func (uc *cartUseCase) ExportReceipt() ([]byte, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	v := uc.view()
	out := receipt.Render(receipt.Data{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Lines:       v.Lines,
		Totals:      v.Totals,
		TaxRate:     uc.engine.TaxRate(),
	})
	uc.log.Infof("Use Case: Receipt exported (%d lines)", len(v.Lines))
	return out, nil
}
