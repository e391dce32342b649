package confirmation

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"walletapp/app/config"
	"walletapp/app/models"
	"walletapp/app/notifier"
	"walletapp/app/permission"
	"walletapp/app/storage/database"
	"walletapp/app/transfer"
	"walletapp/app/viewmodel"
	"walletapp/pkg/log"
	"walletapp/pkg/response"
	"walletapp/pkg/uuid"
)

const (
	sessionTTL      = 30 * time.Minute
	cleanupInterval = 10 * time.Minute

	pollInterval      = time.Second
	maxPollTicks      = 10
	dismissAfterTicks = 5

	transferFailedMessage = "The transfer could not be completed. Please try again."
)

func waitFlagName(clientID string) string {
	return "transfer_wait:" + clientID
}

// Manager orchestrates the confirmation flow: build rows, call the
// transfer service, interpret the result, optionally wait for the push
// pipeline, and drive the view.
type Manager struct {
	ViewModel   viewmodel.Service
	Transfer    transfer.Service
	Permission  permission.Service
	Notifier    notifier.Service
	DB          database.Database
	Secrets     config.Secrets
	ViewFactory ViewFactory

	sessions     *cache.Cache
	pollInterval time.Duration
}

func NewManager(
	vm viewmodel.Service,
	tr transfer.Service,
	perm permission.Service,
	notif notifier.Service,
	db database.Database,
	secrets config.Secrets,
	viewFactory ViewFactory,
) *Manager {
	m := &Manager{
		ViewModel:    vm,
		Transfer:     tr,
		Permission:   perm,
		Notifier:     notif,
		DB:           db,
		Secrets:      secrets,
		ViewFactory:  viewFactory,
		sessions:     cache.New(sessionTTL, cleanupInterval),
		pollInterval: pollInterval,
	}
	// an evicted session cancels its background poll, if any
	m.sessions.OnEvicted(func(_ string, value interface{}) {
		if s, ok := value.(*session); ok {
			s.cancel()
		}
	})
	return m
}

// Open creates a confirmation session for the payload and produces the
// initial row sequence.
func (m *Manager) Open(ctx context.Context, confirmation *models.NewConfirmation) (*models.Confirmation, error) {
	log.AddFields(ctx, "confirmation", confirmation)

	if err := confirmation.Validate(); err != nil {
		return nil, err
	}

	sessionCtx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:       uuid.NewUUID(),
		clientID: confirmation.ClientID,
		payload:  confirmation.Payload,
		ctx:      sessionCtx,
		cancel:   cancel,
	}
	s.view = m.ViewFactory(s.clientID, s.id)

	rows := m.ViewModel.BuildMainRows(ctx, s.payload, confirmation.Locale)
	accessory := m.ViewModel.BuildAccessoryRow(ctx, s.payload, confirmation.Locale)
	s.replaceRows(confirmation.Locale, rows, accessory)
	s.view.ShowRows(rows, accessory)

	m.sessions.Set(s.id, s, cache.DefaultExpiration)
	return s.snapshot(), nil
}

// Rows returns the currently visible row sequence.
func (m *Manager) Rows(ctx context.Context, filter *models.ConfirmationFilter) (*models.Confirmation, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s, err := m.getSession(filter.ClientID, filter.ID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// Perform runs a single transfer attempt for the session.
func (m *Manager) Perform(ctx context.Context, filter *models.ConfirmationFilter) error {
	log.AddFields(ctx, "confirmation", filter.ID)

	if err := filter.Validate(); err != nil {
		return err
	}

	s, err := m.getSession(filter.ClientID, filter.ID)
	if err != nil {
		return err
	}

	if !s.begin() {
		return response.NewError(response.CodeConflict, "a transfer is already in progress")
	}

	attempt, err := m.DB.CreateAttempt(ctx, database.NewAttemptFromPublic(s.id, s.clientID, s.payload))
	if err != nil {
		s.finish()
		return err
	}

	s.view.ShowLoading()

	if err := m.Transfer.Transfer(ctx, &s.payload.TransferInfo); err != nil {
		// the cause stays opaque: log it, surface one generic message
		log.Errorw("transfer failed", "confirmation", s.id, "error", err.Error())
		_ = m.DB.FailAttempt(ctx, attempt.ID, err.Error())
		s.finish()
		s.view.HideLoading()
		s.view.ShowError(transferFailedMessage)
		return nil
	}

	if err := m.DB.CompleteAttempt(ctx, attempt.ID); err != nil {
		log.Warnw("failed to complete an attempt record", "error", err.Error())
	}

	// exactly one domain event per successful transfer
	m.Notifier.Notify(ctx, &models.Notification{
		ClientID: s.clientID,
		Message:  &models.TransferCompleted{ConfirmationID: s.id, Payload: s.payload},
	})

	status, err := m.Permission.Status(ctx, s.clientID)
	if err != nil {
		log.Warnw("failed to read the permission status", "confirmation", s.id, "error", err.Error())
	}
	if status != models.PermissionAuthorized {
		s.finish()
		s.view.HideLoading()
		s.view.NavigateToResult(s.payload)
		return nil
	}

	// begin a wait window for the push pipeline; the loading indicator
	// stays up until the window resolves
	if err := m.DB.SetFlag(ctx, waitFlagName(s.clientID), 1); err != nil {
		log.Warnw("failed to begin a wait window", "confirmation", s.id, "error", err.Error())
		s.finish()
		s.view.HideLoading()
		s.view.NavigateToResult(s.payload)
		return nil
	}

	go m.poll(s)
	return nil
}

// poll watches the wait flag once per tick. The screen is dismissed as
// soon as the push pipeline clears the flag, or after five ticks,
// whichever comes first. The loop itself is capped at ten ticks; past
// that the screen is left as is.
func (m *Manager) poll(s *session) {
	defer s.finish()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for tick := 1; tick <= maxPollTicks; tick++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}

		value, err := m.DB.GetFlag(s.ctx, waitFlagName(s.clientID))
		if err != nil {
			log.Warnw("failed to poll the wait flag", "confirmation", s.id, "error", err.Error())
		}
		cleared := err == nil && value == 0

		if cleared || tick >= dismissAfterTicks {
			s.view.HideLoading()
			s.view.Dismiss()
			return
		}
	}
}

// Localize rebuilds the whole row sequence for the new locale. Rows are
// fully replaced; no stale rows are retained.
func (m *Manager) Localize(ctx context.Context, localization *models.Localization) (*models.Confirmation, error) {
	log.AddFields(ctx, "localization", localization)

	if err := localization.Validate(); err != nil {
		return nil, err
	}

	s, err := m.getSession(localization.ClientID, localization.ID)
	if err != nil {
		return nil, err
	}

	rows := m.ViewModel.BuildMainRows(ctx, s.payload, localization.Locale)
	accessory := m.ViewModel.BuildAccessoryRow(ctx, s.payload, localization.Locale)
	s.replaceRows(localization.Locale, rows, accessory)
	s.view.ShowRows(rows, accessory)

	return s.snapshot(), nil
}

// Close tears the session down and cancels its background poll, if any.
func (m *Manager) Close(ctx context.Context, filter *models.ConfirmationFilter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	s, err := m.getSession(filter.ClientID, filter.ID)
	if err != nil {
		return err
	}

	s.cancel()
	m.sessions.Delete(s.id)
	return nil
}

// ClearWaitFlag ends the wait window for a client. It is issued by the
// push-delivery pipeline, authenticated with a request signature.
func (m *Manager) ClearWaitFlag(ctx context.Context, flag *models.ClearWaitFlag) error {
	log.AddFields(ctx, "client", flag.ClientID)

	if err := flag.Validate(m.Secrets.API); err != nil {
		return err
	}

	return m.DB.SetFlag(ctx, waitFlagName(flag.ClientID), 0)
}

// AttemptHistory lists past transfer attempts of the client.
func (m *Manager) AttemptHistory(ctx context.Context, filter *models.AttemptHistoryFilter) (*models.AttemptHistory, error) {
	log.AddFields(ctx, "filter", filter)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	attempts, total, err := m.DB.AttemptHistory(ctx, &database.AttemptHistoryFilter{
		ClientID: filter.ClientID,
		Skip:     filter.Skip,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	var result []*models.AttemptHistoryItem
	for _, a := range attempts {
		result = append(result, a.ToPublic())
	}

	return &models.AttemptHistory{
		Attempts: result,
		Meta:     &models.ListMeta{Total: total},
	}, nil
}

func (m *Manager) getSession(clientID, id string) (*session, error) {
	cached, found := m.sessions.Get(id)
	if !found {
		return nil, response.NewError(response.CodeNotFound, "confirmation not found")
	}

	s, ok := cached.(*session)
	if !ok || s.clientID != clientID {
		return nil, response.NewError(response.CodeNotFound, "confirmation not found")
	}
	return s, nil
}
