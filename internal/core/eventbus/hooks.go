package eventbus

import "sync"

// hooks observes bus activity without subscribing to individual events.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers a hook that fires after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
}

// OnDrop registers a hook that fires when a full queue drops an event.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onDrop = append(bus.hooks.onDrop, fn)
}

// OnSubscribe registers a hook that fires after a subscriber is added.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onSubscribe = append(bus.hooks.onSubscribe, fn)
}

// OnPanic registers a hook that fires when a subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
}

func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onPublish) {
			fn(event, payload)
		}
	default:
		for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onDrop) {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onSubscribe) {
		fn(event)
	}
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range snapshot(&bus.hooks.mu, &bus.hooks.onPanic) {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}

// snapshot copies a hook slice under the read lock so hooks run unlocked.
func snapshot[T any](mu *sync.RWMutex, fns *[]T) []T {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]T, len(*fns))
	copy(out, *fns)
	return out
}
