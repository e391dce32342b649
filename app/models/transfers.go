package models

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// TransferInfo describes the transfer itself: what asset, how much,
// an optional fee and free-text details entered by the user.
type TransferInfo struct {
	Asset   string           `json:"asset,omitempty"`
	Amount  decimal.Decimal  `json:"amount"`
	Fee     *decimal.Decimal `json:"fee,omitempty"`
	Details string           `json:"details,omitempty"`
}

func (i *TransferInfo) Validate() error {
	if i.Asset == "" {
		return errors.New("empty asset provided")
	}

	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transfer amount must be positive")
	}

	if i.Fee != nil && i.Fee.IsNegative() {
		return errors.New("transfer fee must not be negative")
	}

	return nil
}

// TransferPayload is the immutable request data a confirmation screen
// is opened with. It is read-only for the lifetime of the screen.
type TransferPayload struct {
	TransferInfo TransferInfo `json:"transfer_info"`
	AssetSymbol  string       `json:"asset_symbol,omitempty"`
	ReceiverName string       `json:"receiver_name,omitempty"`
}

func (p *TransferPayload) Validate() error {
	if err := p.TransferInfo.Validate(); err != nil {
		return err
	}

	if p.ReceiverName == "" {
		return errors.New("empty receiver name provided")
	}

	return nil
}

type NewConfirmation struct {
	ClientID string           `json:"-"` // filled from access token
	Locale   string           `json:"locale,omitempty"`
	Payload  *TransferPayload `json:"payload,omitempty"`
}

func (c *NewConfirmation) Validate() error {
	if c.ClientID == "" {
		return errors.New("empty client id; it must be set on server during the processing, contact the support")
	}

	if c.Locale == "" {
		return errors.New("empty locale provided")
	}

	if c.Payload == nil {
		return errors.New("empty transfer payload provided")
	}

	return c.Payload.Validate()
}

type ConfirmationFilter struct {
	ClientID string `json:"-"` // filled from access token
	ID       string `json:"-"` // filled from path param
}

func (f *ConfirmationFilter) Validate() error {
	if f.ClientID == "" {
		return errors.New("empty client id; it must be set on server during the processing, contact the support")
	}

	if f.ID == "" {
		return errors.New("empty confirmation id provided")
	}

	return nil
}

type Localization struct {
	ClientID string `json:"-"` // filled from access token
	ID       string `json:"-"` // filled from path param
	Locale   string `json:"locale,omitempty"`
}

func (l *Localization) Validate() error {
	if l.ClientID == "" {
		return errors.New("empty client id; it must be set on server during the processing, contact the support")
	}

	if l.ID == "" {
		return errors.New("empty confirmation id provided")
	}

	if l.Locale == "" {
		return errors.New("empty locale provided")
	}

	return nil
}

// Confirmation is the screen state rendered for the client: the full
// row sequence plus the accessory row.
type Confirmation struct {
	ID        string        `json:"id"`
	Locale    string        `json:"locale"`
	Rows      []*DisplayRow `json:"rows"`
	Accessory *DisplayRow   `json:"accessory,omitempty"`
}

type AttemptHistoryFilter struct {
	ClientID string  `json:"-"` // filled from access token
	Skip     uint64  `json:"-"` // filled from query param
	Limit    *uint64 `json:"-"` // filled from query param
}

func (f *AttemptHistoryFilter) Validate() error {
	if f.ClientID == "" {
		return errors.New("empty client id; it must be set on server during the processing, contact the support")
	}

	return nil
}

type AttemptHistoryItem struct {
	Base
	Asset    string `json:"asset"`
	Amount   string `json:"amount"`
	Fee      string `json:"fee,omitempty"`
	Receiver string `json:"receiver"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type AttemptHistory struct {
	Attempts []*AttemptHistoryItem `json:"attempts"`
	Meta     *ListMeta             `json:"meta"`
}
