package models

import (
	"github.com/pkg/errors"

	"walletapp/pkg/crypto"
)

// ClearWaitFlag is issued by the push-delivery pipeline once the
// long-running wait for a client is over.
type ClearWaitFlag struct {
	ClientID  string `json:"client_id,omitempty"`
	Signature string `json:"-"` // provided in a header
}

func (f *ClearWaitFlag) Validate(apiSecret string) error {
	if f.ClientID == "" {
		return errors.New("empty client id provided")
	}

	if f.Signature == "" {
		return errors.New("empty signature provided")
	}

	if crypto.GetSHA256(f.ClientID, apiSecret) != f.Signature {
		return errors.New("invalid signature provided")
	}

	return nil
}
