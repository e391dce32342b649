package transfer

import (
	"context"

	"walletapp/app/models"
)

type Service interface {
	Transfer(ctx context.Context, info *models.TransferInfo) error
}
