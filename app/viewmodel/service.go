package viewmodel

import (
	"context"

	"walletapp/app/models"
)

type Service interface {
	BuildAmountRows(ctx context.Context, payload *models.TransferPayload, locale string) []*models.DisplayRow
	BuildMainRows(ctx context.Context, payload *models.TransferPayload, locale string) []*models.DisplayRow
	BuildAccessoryRow(ctx context.Context, payload *models.TransferPayload, locale string) *models.DisplayRow
}
