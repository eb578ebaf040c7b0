package notifier

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNilNotifier          = errors.New("nil notifier")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type Listener func(args ...any)

// Notifier delivers events synchronously, in registration order.
type Notifier interface {
	On(event string, listener Listener) uuid.UUID
	Once(event string, listener Listener) uuid.UUID
	Off(event string, id uuid.UUID) error
	RemoveAllListeners(events ...string)
	Emit(event string, args ...any) bool
	ListenerCount(event string) int
}
