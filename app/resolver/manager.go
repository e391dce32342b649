package resolver

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"walletapp/app/config"
	"walletapp/pkg/money"
)

const (
	cacheExpiration = 5 * time.Minute
	cleanupInterval = 7 * time.Minute
)

// Manager resolves assets of the current account to their display
// formatters.
type Manager struct {
	Assets config.Assets

	cache *cache.Cache
}

func NewManager(cfg config.Assets) *Manager {
	return &Manager{
		Assets: cfg,
		cache:  cache.New(cacheExpiration, cleanupInterval),
	}
}

// FormatterFor returns a formatter specialized for the asset, or a default
// one when the asset is not in the known set.
func (m *Manager) FormatterFor(ctx context.Context, asset string) *money.Formatter {
	if cached, found := m.cache.Get(asset); found {
		if formatter, ok := cached.(*money.Formatter); ok {
			return formatter
		}
	}

	digits := m.Assets.DefaultDigits
	for _, known := range m.Assets.Known {
		if known.Code == asset {
			digits = known.Digits
			break
		}
	}

	formatter := money.NewFormatter(digits)
	m.cache.Set(asset, formatter, cache.DefaultExpiration)
	return formatter
}
