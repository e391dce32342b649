package models

const (
	ViewEventRowsReplaced   = "rows_replaced"
	ViewEventLoading        = "loading"
	ViewEventLoadingDone    = "loading_done"
	ViewEventError          = "error"
	ViewEventNavigateResult = "navigate_result"
	ViewEventDismiss        = "dismiss"
)

// ViewEvent is a view-state transition pushed to the hosting screen.
type ViewEvent struct {
	ConfirmationID string           `json:"confirmation_id"`
	Kind           string           `json:"kind"`
	Message        string           `json:"message,omitempty"`
	Rows           []*DisplayRow    `json:"rows,omitempty"`
	Accessory      *DisplayRow      `json:"accessory,omitempty"`
	Payload        *TransferPayload `json:"payload,omitempty"`
}

// TransferCompleted is the domain event broadcast exactly once per
// successful transfer.
type TransferCompleted struct {
	ConfirmationID string           `json:"confirmation_id"`
	Payload        *TransferPayload `json:"payload"`
}
