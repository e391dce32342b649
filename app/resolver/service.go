package resolver

import (
	"context"

	"walletapp/pkg/money"
)

type Service interface {
	FormatterFor(ctx context.Context, asset string) *money.Formatter
}
