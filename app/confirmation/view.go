package confirmation

import (
	"context"

	"walletapp/app/models"
	"walletapp/app/notifier"
)

// View is the surface a confirmation session drives. The hosting screen
// renders whatever transitions arrive here; only the session touches it.
type View interface {
	ShowRows(rows []*models.DisplayRow, accessory *models.DisplayRow)
	ShowLoading()
	HideLoading()
	ShowError(message string)
	NavigateToResult(payload *models.TransferPayload)
	Dismiss()
}

// ViewFactory creates the view for one confirmation session.
type ViewFactory func(clientID, confirmationID string) View

// NewNotifierViewFactory builds views that push every transition to the
// client as a websocket notification.
func NewNotifierViewFactory(n notifier.Service) ViewFactory {
	return func(clientID, confirmationID string) View {
		return &notifierView{
			notifier:       n,
			clientID:       clientID,
			confirmationID: confirmationID,
		}
	}
}

type notifierView struct {
	notifier       notifier.Service
	clientID       string
	confirmationID string
}

func (v *notifierView) send(event *models.ViewEvent) {
	event.ConfirmationID = v.confirmationID
	v.notifier.Notify(context.Background(), &models.Notification{
		ClientID: v.clientID,
		Message:  event,
	})
}

func (v *notifierView) ShowRows(rows []*models.DisplayRow, accessory *models.DisplayRow) {
	v.send(&models.ViewEvent{Kind: models.ViewEventRowsReplaced, Rows: rows, Accessory: accessory})
}

func (v *notifierView) ShowLoading() {
	v.send(&models.ViewEvent{Kind: models.ViewEventLoading})
}

func (v *notifierView) HideLoading() {
	v.send(&models.ViewEvent{Kind: models.ViewEventLoadingDone})
}

func (v *notifierView) ShowError(message string) {
	v.send(&models.ViewEvent{Kind: models.ViewEventError, Message: message})
}

func (v *notifierView) NavigateToResult(payload *models.TransferPayload) {
	v.send(&models.ViewEvent{Kind: models.ViewEventNavigateResult, Payload: payload})
}

func (v *notifierView) Dismiss() {
	v.send(&models.ViewEvent{Kind: models.ViewEventDismiss})
}
