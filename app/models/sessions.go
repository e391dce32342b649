package models

import (
	"github.com/pkg/errors"

	"walletapp/pkg/crypto"
)

type NewSession struct {
	ClientID  string `json:"client_id,omitempty"`
	Signature string `json:"-"` // provided in a header
}

func (s *NewSession) Validate(apiSecret string) error {
	if s.ClientID == "" {
		return errors.New("empty client id provided")
	}

	if s.Signature == "" {
		return errors.New("empty signature provided")
	}

	if crypto.GetSHA256(s.ClientID, apiSecret) != s.Signature {
		return errors.New("invalid signature provided")
	}

	return nil
}

type AuthorizedSession struct {
	ClientID    string `json:"client_id"`
	AccessToken string `json:"access_token,omitempty"`
}
