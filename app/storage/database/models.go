package database

import (
	"time"

	"walletapp/app/models"
	"walletapp/pkg/money"
)

const (
	// attempt statuses
	AttemptStatusNew       = "new"
	AttemptStatusCompleted = "completed"
	AttemptStatusFailed    = "failed"
)

type Base struct {
	ID        string     `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (b *Base) GetUpdatedAtUnix() int64 {
	if b == nil || b.UpdatedAt == nil {
		return 0
	}
	return b.UpdatedAt.Unix()
}

func (b *Base) ToPublic() models.Base {
	return models.Base{
		ID:        b.ID,
		CreatedAt: b.CreatedAt.Unix(),
		UpdatedAt: b.GetUpdatedAtUnix(),
	}
}

type NewAttempt struct {
	ClientID       string  `db:"client_id"`
	ConfirmationID string  `db:"confirmation_id"`
	Asset          string  `db:"asset"`
	Amount         string  `db:"amount"`
	Fee            *string `db:"fee"`
	Receiver       string  `db:"receiver"`
	Status         string  `db:"status"`
}

func NewAttemptFromPublic(confirmationID, clientID string, payload *models.TransferPayload) *NewAttempt {
	attempt := &NewAttempt{
		ClientID:       clientID,
		ConfirmationID: confirmationID,
		Asset:          payload.TransferInfo.Asset,
		Amount:         money.Raw(payload.TransferInfo.Amount),
		Receiver:       payload.ReceiverName,
		Status:         AttemptStatusNew,
	}
	if payload.TransferInfo.Fee != nil {
		fee := money.Raw(*payload.TransferInfo.Fee)
		attempt.Fee = &fee
	}
	return attempt
}

type Attempt struct {
	Base
	NewAttempt
	Error *string `db:"error"`
}

func (a *Attempt) ToPublic() *models.AttemptHistoryItem {
	item := &models.AttemptHistoryItem{
		Base:     a.Base.ToPublic(),
		Asset:    a.Asset,
		Amount:   a.Amount,
		Receiver: a.Receiver,
		Status:   a.Status,
	}
	if a.Fee != nil {
		item.Fee = *a.Fee
	}
	if a.Error != nil {
		item.Error = *a.Error
	}
	return item
}

type AttemptHistoryFilter struct {
	ClientID string
	Skip     uint64
	Limit    *uint64
}
