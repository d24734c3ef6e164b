package repository

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cart_service/internal/domain"
)

const (
	settingsKeyDiscount = "discount"
	settingsKeyShipping = "shipping"
)

// Settings is the lightweight session state persisted alongside the cart:
// the last-used discount code and shipping fee.
type Settings struct {
	DiscountCode string          `json:"discount"`
	ShippingFee  decimal.Decimal `json:"shipping"`
}

// DefaultSettings are the documented fallbacks: no code, zero shipping.
func DefaultSettings() Settings {
	return Settings{DiscountCode: "", ShippingFee: decimal.Zero}
}

// SettingsCodec encodes and decodes the `key=value` settings snapshot.
type SettingsCodec struct {
	log *logrus.Logger
}

func NewSettingsCodec(logger *logrus.Logger) *SettingsCodec {
	return &SettingsCodec{log: logger}
}

// Encode emits plain `key=value` pairs with the shipping fee formatted to
// two fractional digits.
func (c *SettingsCodec) Encode(s Settings) []byte {
	return []byte(fmt.Sprintf("%s=%s\n%s=%s\n",
		settingsKeyDiscount, s.DiscountCode,
		settingsKeyShipping, s.ShippingFee.StringFixed(2)))
}

// Decode is tolerant: an unparsable document, missing keys, or a bad or
// negative shipping value all fall back to the defaults rather than erroring.
func (c *SettingsCodec) Decode(data []byte) Settings {
	s := DefaultSettings()
	values, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		c.log.Warnf("Settings snapshot unreadable, using defaults: %v", err)
		return s
	}
	if code, ok := values[settingsKeyDiscount]; ok {
		s.DiscountCode = code
	}
	if raw, ok := values[settingsKeyShipping]; ok {
		fee, err := decimal.NewFromString(raw)
		if err != nil || fee.IsNegative() {
			c.log.Warnf("Ignoring invalid shipping value %q in settings", raw)
		} else {
			s.ShippingFee = domain.Round2(fee)
		}
	}
	return s
}
