package accessory

import (
	"walletapp/app/models"
)

type Service interface {
	CreateViewModel(name, fullName, actionLabel string) *models.AccessoryViewModel
}
