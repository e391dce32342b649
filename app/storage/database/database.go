package database

import (
	"context"
)

type Database interface {
	SetFlag(ctx context.Context, name string, value int) error
	GetFlag(ctx context.Context, name string) (int, error)
	CreateAttempt(ctx context.Context, attempt *NewAttempt) (*Attempt, error)
	CompleteAttempt(ctx context.Context, id string) error
	FailAttempt(ctx context.Context, id, msg string) error
	AttemptHistory(ctx context.Context, filter *AttemptHistoryFilter) ([]*Attempt, uint64, error)
	Close() error
}
