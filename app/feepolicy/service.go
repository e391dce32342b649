package feepolicy

import (
	"github.com/shopspring/decimal"
)

type Service interface {
	DecimalValue(fee *decimal.Decimal) *decimal.Decimal
	DisplayName(locale string) string
}
