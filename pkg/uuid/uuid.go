package uuid

import (
	"github.com/segmentio/ksuid"
)

// NewUUID returns a k-sortable unique identifier string.
func NewUUID() string {
	return ksuid.New().String()
}
