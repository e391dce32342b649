package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultDigits is used for assets without an explicit
	// fraction-digits setting.
	DefaultDigits = 2
)

// Formatter renders decimal amounts for a locale with a fixed number of
// fraction digits (two for fiat-like assets, more for crypto assets).
type Formatter struct {
	Digits int32
}

// NewFormatter creates a formatter with the given fraction digits,
// falling back to DefaultDigits for non-positive values.
func NewFormatter(digits int32) *Formatter {
	if digits <= 0 {
		digits = DefaultDigits
	}
	return &Formatter{Digits: digits}
}

// Format renders the amount for the locale. The boolean result reports
// whether the locale could be resolved; callers are expected to fall back
// to a raw rendering when it is false.
func (f *Formatter) Format(locale string, amount decimal.Decimal) (string, bool) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}

	value, _ := amount.Round(f.Digits).Float64()
	printer := message.NewPrinter(tag)
	return printer.Sprintf("%v", number.Decimal(value, number.Scale(int(f.Digits)))), true
}

// Raw renders the amount without any locale formatting.
func Raw(amount decimal.Decimal) string {
	return amount.String()
}
