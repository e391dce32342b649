package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"walletapp/app/config"
	"walletapp/app/models"
)

const (
	apiKeyHeader = "x-api-key"

	transfersPath = "/transfers"
)

// Manager hands the transfer over to the remote wallet core service.
// The outcome is success or an opaque failure; the cause is never
// classified here.
type Manager struct {
	Config     config.WalletCore
	HttpClient *http.Client
}

func (m *Manager) Transfer(ctx context.Context, info *models.TransferInfo) error {
	body, err := json.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "failed to marshal a transfer")
	}

	req, err := http.NewRequest(http.MethodPost, m.Config.BasePath+transfersPath, bytes.NewReader(body))
	if err != nil {
		return errors.New("failed to create a post request")
	}
	req = req.WithContext(ctx)
	req.Header.Set(apiKeyHeader, m.Config.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HttpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform a post request to the wallet core")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("response has status code with error: %d", resp.StatusCode)
	}
	return nil
}
