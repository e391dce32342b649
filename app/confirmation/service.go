package confirmation

import (
	"context"

	"walletapp/app/models"
)

type Service interface {
	Open(ctx context.Context, confirmation *models.NewConfirmation) (*models.Confirmation, error)
	Rows(ctx context.Context, filter *models.ConfirmationFilter) (*models.Confirmation, error)
	Perform(ctx context.Context, filter *models.ConfirmationFilter) error
	Localize(ctx context.Context, localization *models.Localization) (*models.Confirmation, error)
	Close(ctx context.Context, filter *models.ConfirmationFilter) error
	ClearWaitFlag(ctx context.Context, flag *models.ClearWaitFlag) error
	AttemptHistory(ctx context.Context, filter *models.AttemptHistoryFilter) (*models.AttemptHistory, error)
}
