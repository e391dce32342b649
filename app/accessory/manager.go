package accessory

import (
	"fmt"

	"walletapp/app/models"
)

// Manager builds the accessory view-model shown under the amount rows.
type Manager struct {
	Icon string
}

func (m *Manager) CreateViewModel(name, fullName, actionLabel string) *models.AccessoryViewModel {
	return &models.AccessoryViewModel{
		Title:       fmt.Sprintf("%s %s", actionLabel, name),
		Subtitle:    fullName,
		ActionLabel: actionLabel,
		Icon:        m.Icon,
	}
}
