package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a state key has never been written.
var ErrNotFound = errors.New("not found")

// State keys. Each holds one JSON document.
const (
	KeyMessagesHistory  = "messagesHistory"
	KeySelectedProducts = "selectedProducts"
)

// StateRepo is durable key/value storage for session state. Values are
// JSON documents; callers own (de)serialization. Both operations are
// best-effort from the application's point of view: callers log
// failures and carry on with empty state.
type StateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
