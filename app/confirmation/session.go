package confirmation

import (
	"context"
	"sync"

	"walletapp/app/models"
)

// session is the state of one open confirmation screen. The payload is
// read-only for the lifetime of the screen; the row sequence is replaced
// wholesale, never patched.
type session struct {
	id       string
	clientID string
	payload  *models.TransferPayload
	view     View

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	locale    string
	rows      []*models.DisplayRow
	accessory *models.DisplayRow
	inFlight  bool
}

// begin marks the single allowed in-flight attempt, reporting whether
// the caller won it.
func (s *session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

func (s *session) replaceRows(locale string, rows []*models.DisplayRow, accessory *models.DisplayRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = locale
	s.rows = rows
	s.accessory = accessory
}

func (s *session) snapshot() *models.Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Confirmation{
		ID:        s.id,
		Locale:    s.locale,
		Rows:      s.rows,
		Accessory: s.accessory,
	}
}
