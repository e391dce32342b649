package permission

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"walletapp/app/config"
	"walletapp/app/models"
)

const (
	apiKeyHeader = "x-api-key"

	permissionsPath = "/permissions/"
)

type statusResponse struct {
	Status string `json:"status"`
}

// Manager queries the notification service for a client's
// push-permission status.
type Manager struct {
	Config     config.Notifications
	HttpClient *http.Client
}

func (m *Manager) Status(ctx context.Context, clientID string) (models.PermissionStatus, error) {
	req, err := http.NewRequest(http.MethodGet, m.Config.BasePath+permissionsPath+url.PathEscape(clientID), nil)
	if err != nil {
		return models.PermissionNotDetermined, errors.New("failed to create a get request")
	}
	req = req.WithContext(ctx)
	req.Header.Set(apiKeyHeader, m.Config.ApiKey)

	resp, err := m.HttpClient.Do(req)
	if err != nil {
		return models.PermissionNotDetermined, errors.Wrap(err, "failed to perform a get request to the notification service")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return models.PermissionNotDetermined, errors.Errorf("response has status code with error: %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return models.PermissionNotDetermined, errors.Wrap(err, "failed to read a response body from the notification service")
	}

	status := new(statusResponse)
	if err = json.Unmarshal(body, status); err != nil {
		return models.PermissionNotDetermined, errors.Wrap(err, "failed to unmarshal a response from the notification service")
	}

	switch s := models.PermissionStatus(status.Status); s {
	case models.PermissionAuthorized, models.PermissionDenied, models.PermissionNotDetermined:
		return s, nil
	}
	return models.PermissionNotDetermined, nil
}
