package confirmation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletapp/app/accessory"
	"walletapp/app/config"
	"walletapp/app/feepolicy"
	"walletapp/app/models"
	"walletapp/app/resolver"
	"walletapp/app/storage/database"
	"walletapp/app/viewmodel"
	"walletapp/pkg/crypto"
)

const testClientID = "client-1"

type fakeView struct {
	mu          sync.Mutex
	loading     int
	loadingDone int
	rowsShown   int
	errors      []string
	navigated   []*models.TransferPayload
	dismissed   chan struct{}
}

func newFakeView() *fakeView {
	return &fakeView{dismissed: make(chan struct{}, 1)}
}

func (v *fakeView) ShowRows(rows []*models.DisplayRow, accessory *models.DisplayRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rowsShown++
}

func (v *fakeView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading++
}

func (v *fakeView) HideLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadingDone++
}

func (v *fakeView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

func (v *fakeView) NavigateToResult(payload *models.TransferPayload) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navigated = append(v.navigated, payload)
}

func (v *fakeView) Dismiss() {
	select {
	case v.dismissed <- struct{}{}:
	default:
	}
}

func (v *fakeView) counters() (loading, loadingDone, rowsShown int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading, v.loadingDone, v.rowsShown
}

type fakeTransfer struct {
	mu    sync.Mutex
	err   error
	block chan struct{}
	calls int
}

func (f *fakeTransfer) Transfer(ctx context.Context, info *models.TransferInfo) error {
	f.mu.Lock()
	f.calls++
	block := f.block
	err := f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return err
}

type fakePermission struct {
	status models.PermissionStatus
	err    error
	calls  int
}

func (f *fakePermission) Status(ctx context.Context, clientID string) (models.PermissionStatus, error) {
	f.calls++
	return f.status, f.err
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func (f *fakeNotifier) Subscribe(ctx context.Context, subscription *models.NewSubscription) error {
	return nil
}

func (f *fakeNotifier) Notify(ctx context.Context, notification *models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, notification)
}

func (f *fakeNotifier) completedEvents() []*models.TransferCompleted {
	f.mu.Lock()
	defer f.mu.Unlock()

	var events []*models.TransferCompleted
	for _, n := range f.notifications {
		if e, ok := n.Message.(*models.TransferCompleted); ok {
			events = append(events, e)
		}
	}
	return events
}

type fakeDB struct {
	mu            sync.Mutex
	flagReads     int
	clearedAtRead int // 0 means the flag is never cleared externally
	flags         map[string]int
	completed     int
	failed        int
}

func newFakeDB() *fakeDB {
	return &fakeDB{flags: make(map[string]int)}
}

func (f *fakeDB) SetFlag(ctx context.Context, name string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[name] = value
	return nil
}

func (f *fakeDB) GetFlag(ctx context.Context, name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flagReads++
	if f.clearedAtRead > 0 && f.flagReads >= f.clearedAtRead {
		return 0, nil
	}
	return f.flags[name], nil
}

func (f *fakeDB) CreateAttempt(ctx context.Context, attempt *database.NewAttempt) (*database.Attempt, error) {
	return &database.Attempt{
		Base:       database.Base{ID: "attempt-1", CreatedAt: time.Now()},
		NewAttempt: *attempt,
	}, nil
}

func (f *fakeDB) CompleteAttempt(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed++
	return nil
}

func (f *fakeDB) FailAttempt(ctx context.Context, id, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed++
	return nil
}

func (f *fakeDB) AttemptHistory(ctx context.Context, filter *database.AttemptHistoryFilter) ([]*database.Attempt, uint64, error) {
	return nil, 0, nil
}

func (f *fakeDB) Close() error { return nil }

func (f *fakeDB) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flagReads
}

func (f *fakeDB) flag(name string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.flags[name]
	return v, ok
}

func newTestManager(db *fakeDB, tr *fakeTransfer, perm *fakePermission, notif *fakeNotifier, view *fakeView) *Manager {
	vm := &viewmodel.Manager{
		Resolver: resolver.NewManager(config.Assets{
			Known:         []config.Asset{{Code: "USD", Digits: 2}},
			DefaultDigits: 2,
		}),
		FeePolicy: &feepolicy.Manager{Config: config.FeeDisplay{DefaultName: "Fee"}},
		Accessory: &accessory.Manager{},
	}

	m := NewManager(vm, tr, perm, notif, db, config.Secrets{API: "api-secret", Token: "token-secret"},
		func(clientID, confirmationID string) View { return view },
	)
	m.pollInterval = time.Millisecond
	return m
}

func newTestPayload() *models.TransferPayload {
	fee := decimal.NewFromFloat(0.5)
	return &models.TransferPayload{
		TransferInfo: models.TransferInfo{
			Asset:  "USD",
			Amount: decimal.NewFromFloat(12.5),
			Fee:    &fee,
		},
		AssetSymbol:  "$",
		ReceiverName: "Alice",
	}
}

func openConfirmation(t *testing.T, m *Manager) *models.Confirmation {
	t.Helper()

	confirmation, err := m.Open(context.Background(), &models.NewConfirmation{
		ClientID: testClientID,
		Locale:   "en",
		Payload:  newTestPayload(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, confirmation.ID)
	return confirmation
}

func waitDismiss(t *testing.T, view *fakeView) {
	t.Helper()

	select {
	case <-view.dismissed:
	case <-time.After(2 * time.Second):
		t.Fatal("the screen was not dismissed in time")
	}
}

func TestOpenBuildsRows(t *testing.T) {
	view := newFakeView()
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)

	// hint + amount + fee + total, no details row for an empty details text
	require.Len(t, confirmation.Rows, 4)
	assert.Equal(t, "$12.50", confirmation.Rows[1].Details)
	require.NotNil(t, confirmation.Accessory)
	assert.Equal(t, models.RowKindAccessory, confirmation.Accessory.Kind)

	_, _, rowsShown := view.counters()
	assert.Equal(t, 1, rowsShown)
}

func TestOpenRejectsInvalidPayload(t *testing.T) {
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, newFakeView())

	_, err := m.Open(context.Background(), &models.NewConfirmation{
		ClientID: testClientID,
		Locale:   "en",
	})
	assert.Error(t, err)
}

func TestPerformFailureShowsErrorAndEmitsNoEvent(t *testing.T) {
	view := newFakeView()
	db := newFakeDB()
	notif := &fakeNotifier{}
	m := newTestManager(db, &fakeTransfer{err: errors.New("boom")}, &fakePermission{}, notif, view)

	confirmation := openConfirmation(t, m)
	err := m.Perform(context.Background(), &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID})
	require.NoError(t, err)

	loading, loadingDone, _ := view.counters()
	assert.Equal(t, 1, loading)
	assert.Equal(t, 1, loadingDone)
	assert.Equal(t, []string{transferFailedMessage}, view.errors)
	assert.Empty(t, notif.completedEvents())
	assert.Equal(t, 1, db.failed)
	assert.Empty(t, view.navigated)
}

func TestPerformFailureAllowsRetry(t *testing.T) {
	view := newFakeView()
	tr := &fakeTransfer{err: errors.New("boom")}
	m := newTestManager(newFakeDB(), tr, &fakePermission{status: models.PermissionDenied}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)
	filter := &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID}
	require.NoError(t, m.Perform(context.Background(), filter))

	tr.err = nil
	require.NoError(t, m.Perform(context.Background(), filter))
	assert.Equal(t, 2, tr.calls)
	assert.Len(t, view.navigated, 1)
}

func TestPerformSuccessPermissionDeniedNavigatesDirectly(t *testing.T) {
	view := newFakeView()
	db := newFakeDB()
	notif := &fakeNotifier{}
	perm := &fakePermission{status: models.PermissionDenied}
	m := newTestManager(db, &fakeTransfer{}, perm, notif, view)

	confirmation := openConfirmation(t, m)
	err := m.Perform(context.Background(), &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID})
	require.NoError(t, err)

	events := notif.completedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, confirmation.ID, events[0].ConfirmationID)
	assert.True(t, events[0].Payload.TransferInfo.Amount.Equal(decimal.NewFromFloat(12.5)))

	assert.Equal(t, 1, perm.calls)
	require.Len(t, view.navigated, 1)

	// no wait window is opened when the permission is denied
	_, ok := db.flag(waitFlagName(testClientID))
	assert.False(t, ok)

	loading, loadingDone, _ := view.counters()
	assert.Equal(t, 1, loading)
	assert.Equal(t, 1, loadingDone)
}

func TestPerformSuccessPollsUntilFlagCleared(t *testing.T) {
	view := newFakeView()
	db := newFakeDB()
	db.clearedAtRead = 3
	m := newTestManager(db, &fakeTransfer{}, &fakePermission{status: models.PermissionAuthorized}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)
	err := m.Perform(context.Background(), &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID})
	require.NoError(t, err)

	waitDismiss(t, view)

	// the dismiss fires on the very tick the flag reads as cleared
	assert.Equal(t, 3, db.reads())

	value, ok := db.flag(waitFlagName(testClientID))
	assert.True(t, ok)
	assert.Equal(t, 1, value) // the wait window was opened exactly once

	// no further polling after the dismiss
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, db.reads())

	_, loadingDone, _ := view.counters()
	assert.Equal(t, 1, loadingDone)
	assert.Empty(t, view.navigated)
}

func TestPerformSuccessDismissesAfterFiveTicks(t *testing.T) {
	view := newFakeView()
	db := newFakeDB()
	m := newTestManager(db, &fakeTransfer{}, &fakePermission{status: models.PermissionAuthorized}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)
	err := m.Perform(context.Background(), &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID})
	require.NoError(t, err)

	waitDismiss(t, view)

	// the flag was never cleared, so the dismiss fires on the fifth tick
	assert.Equal(t, 5, db.reads())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 5, db.reads())
}

func TestPerformSingleInFlightAttempt(t *testing.T) {
	view := newFakeView()
	tr := &fakeTransfer{block: make(chan struct{})}
	m := newTestManager(newFakeDB(), tr, &fakePermission{status: models.PermissionDenied}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)
	filter := &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.Perform(context.Background(), filter)
	}()

	assert.Eventually(t, func() bool {
		loading, _, _ := view.counters()
		return loading == 1
	}, time.Second, time.Millisecond)

	err := m.Perform(context.Background(), filter)
	assert.Error(t, err)

	close(tr.block)
	<-done
}

func TestLocalizeReplacesAllRows(t *testing.T) {
	view := newFakeView()
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, view)

	confirmation := openConfirmation(t, m)
	localized, err := m.Localize(context.Background(), &models.Localization{
		ClientID: testClientID,
		ID:       confirmation.ID,
		Locale:   "de",
	})
	require.NoError(t, err)

	assert.Equal(t, "de", localized.Locale)
	require.Len(t, localized.Rows, 4)
	assert.Equal(t, "Bitte Überweisungsdetails prüfen", localized.Rows[0].Title)
	assert.NotEqual(t, confirmation.Rows[0].Title, localized.Rows[0].Title)

	_, _, rowsShown := view.counters()
	assert.Equal(t, 2, rowsShown)
}

func TestCloseRemovesSession(t *testing.T) {
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, newFakeView())

	confirmation := openConfirmation(t, m)
	filter := &models.ConfirmationFilter{ClientID: testClientID, ID: confirmation.ID}
	require.NoError(t, m.Close(context.Background(), filter))

	_, err := m.Rows(context.Background(), filter)
	assert.Error(t, err)
}

func TestRowsRequiresMatchingClient(t *testing.T) {
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, newFakeView())

	confirmation := openConfirmation(t, m)
	_, err := m.Rows(context.Background(), &models.ConfirmationFilter{ClientID: "other", ID: confirmation.ID})
	assert.Error(t, err)
}

func TestClearWaitFlag(t *testing.T) {
	db := newFakeDB()
	m := newTestManager(db, &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, newFakeView())

	err := m.ClearWaitFlag(context.Background(), &models.ClearWaitFlag{
		ClientID:  testClientID,
		Signature: crypto.GetSHA256(testClientID, "api-secret"),
	})
	require.NoError(t, err)

	value, ok := db.flag(waitFlagName(testClientID))
	assert.True(t, ok)
	assert.Equal(t, 0, value)
}

func TestClearWaitFlagRejectsBadSignature(t *testing.T) {
	m := newTestManager(newFakeDB(), &fakeTransfer{}, &fakePermission{}, &fakeNotifier{}, newFakeView())

	err := m.ClearWaitFlag(context.Background(), &models.ClearWaitFlag{
		ClientID:  testClientID,
		Signature: "bogus",
	})
	assert.Error(t, err)
}
