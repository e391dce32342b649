package feepolicy

import (
	"strings"

	"github.com/shopspring/decimal"

	"walletapp/app/config"
)

const (
	fallbackName = "Fee"
)

// Manager decides whether a fee is shown and what the fee row is called.
type Manager struct {
	Config config.FeeDisplay
}

// DecimalValue resolves an optional fee to a displayable decimal.
// Absent, zero and negative fees are not displayed.
func (m *Manager) DecimalValue(fee *decimal.Decimal) *decimal.Decimal {
	if fee == nil || fee.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	return fee
}

// DisplayName returns the localized title for the fee row, falling back
// to the base language and then to the configured default.
func (m *Manager) DisplayName(locale string) string {
	if name, ok := m.Config.Names[locale]; ok {
		return name
	}

	// e.g. "en" for "en-US"
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		if name, ok := m.Config.Names[locale[:i]]; ok {
			return name
		}
	}

	if m.Config.DefaultName != "" {
		return m.Config.DefaultName
	}
	return fallbackName
}
