package permission

import (
	"context"

	"walletapp/app/models"
)

type Service interface {
	Status(ctx context.Context, clientID string) (models.PermissionStatus, error)
}
