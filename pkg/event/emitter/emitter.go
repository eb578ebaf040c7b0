// Package emitter is a synchronous, in-process event notifier.
//
// Listeners are invoked on the goroutine calling Emit, in the order they were
// registered. An Emitter is not safe for concurrent use.
package emitter

import (
	"fmt"
	"log/slog"
	"slices"

	motmedelErrors "github.com/Motmedel/mock_http_go/pkg/errors"
	"github.com/Motmedel/mock_http_go/pkg/interfaces/notifier"
	"github.com/google/uuid"
)

type subscription struct {
	id       uuid.UUID
	listener notifier.Listener
	once     bool
}

type Emitter struct {
	Logger        *slog.Logger
	subscriptions map[string][]*subscription
}

func (emitter *Emitter) logger() *slog.Logger {
	if emitter.Logger == nil {
		return slog.Default()
	}
	return emitter.Logger
}

func (emitter *Emitter) add(event string, listener notifier.Listener, once bool) uuid.UUID {
	if emitter.subscriptions == nil {
		emitter.subscriptions = make(map[string][]*subscription)
	}

	id := uuid.New()
	emitter.subscriptions[event] = append(
		emitter.subscriptions[event],
		&subscription{id: id, listener: listener, once: once},
	)

	emitter.logger().Debug(
		"Created event subscription.",
		slog.Group("subscription", slog.String("id", id.String()), slog.String("event", event), slog.Bool("once", once)),
	)

	return id
}

func (emitter *Emitter) On(event string, listener notifier.Listener) uuid.UUID {
	return emitter.add(event, listener, false)
}

func (emitter *Emitter) Once(event string, listener notifier.Listener) uuid.UUID {
	return emitter.add(event, listener, true)
}

func (emitter *Emitter) remove(event string, id uuid.UUID) bool {
	subscriptions := emitter.subscriptions[event]
	index := slices.IndexFunc(subscriptions, func(s *subscription) bool { return s.id == id })
	if index == -1 {
		return false
	}

	emitter.subscriptions[event] = slices.Delete(slices.Clone(subscriptions), index, index+1)
	return true
}

func (emitter *Emitter) Off(event string, id uuid.UUID) error {
	if !emitter.remove(event, id) {
		return motmedelErrors.NewWithTrace(
			fmt.Errorf("%w: %s (%s)", notifier.ErrSubscriptionNotFound, id, event),
			id,
		)
	}
	return nil
}

// RemoveAllListeners removes the listeners of the given events, or of every
// event when none is given.
func (emitter *Emitter) RemoveAllListeners(events ...string) {
	if len(events) == 0 {
		emitter.subscriptions = nil
		return
	}

	for _, event := range events {
		delete(emitter.subscriptions, event)
	}
}

func (emitter *Emitter) ListenerCount(event string) int {
	return len(emitter.subscriptions[event])
}

// Emit calls the listeners of event with args and reports whether there were
// any. Listeners registered during the emission are not called by it.
func (emitter *Emitter) Emit(event string, args ...any) bool {
	subscriptions := slices.Clone(emitter.subscriptions[event])
	if len(subscriptions) == 0 {
		return false
	}

	for _, s := range subscriptions {
		if s.once {
			emitter.remove(event, s.id)
		}
		s.listener(args...)
	}

	return true
}

func New() *Emitter {
	return &Emitter{subscriptions: make(map[string][]*subscription)}
}

var _ notifier.Notifier = (*Emitter)(nil)
