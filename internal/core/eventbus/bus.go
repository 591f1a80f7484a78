package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus queues published events and dispatches them to subscribers on
// the goroutine running Start. Publishing never blocks; events beyond the
// buffer are dropped and reported to OnDrop hooks.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given queue size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is done, then delivers whatever is
// still queued and returns.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		case <-ctx.Done():
			for {
				select {
				case env := <-bus.ch:
					bus.dispatch(env)
				default:
					return
				}
			}
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

// PublishListCreated enqueues a list.created event.
func (bus *EventBus) PublishListCreated(p ListCreatedPayload) {
	bus.send(EventListCreated, p)
}

// SubscribeListCreated registers fn for list.created events.
func (bus *EventBus) SubscribeListCreated(fn func(ListCreatedPayload)) {
	bus.subscribe(EventListCreated, func(p any) { fn(p.(ListCreatedPayload)) })
}

// PublishItemAdded enqueues an item.added event.
func (bus *EventBus) PublishItemAdded(p ItemAddedPayload) {
	bus.send(EventItemAdded, p)
}

// SubscribeItemAdded registers fn for item.added events.
func (bus *EventBus) SubscribeItemAdded(fn func(ItemAddedPayload)) {
	bus.subscribe(EventItemAdded, func(p any) { fn(p.(ItemAddedPayload)) })
}

// PublishItemConfirmed enqueues an item.confirmed event.
func (bus *EventBus) PublishItemConfirmed(p ItemConfirmedPayload) {
	bus.send(EventItemConfirmed, p)
}

// SubscribeItemConfirmed registers fn for item.confirmed events.
func (bus *EventBus) SubscribeItemConfirmed(fn func(ItemConfirmedPayload)) {
	bus.subscribe(EventItemConfirmed, func(p any) { fn(p.(ItemConfirmedPayload)) })
}

// PublishItemCancelled enqueues an item.cancelled event.
func (bus *EventBus) PublishItemCancelled(p ItemCancelledPayload) {
	bus.send(EventItemCancelled, p)
}

// SubscribeItemCancelled registers fn for item.cancelled events.
func (bus *EventBus) SubscribeItemCancelled(fn func(ItemCancelledPayload)) {
	bus.subscribe(EventItemCancelled, func(p any) { fn(p.(ItemCancelledPayload)) })
}

// PublishItemResolved enqueues an item.resolved event.
func (bus *EventBus) PublishItemResolved(p ItemResolvedPayload) {
	bus.send(EventItemResolved, p)
}

// SubscribeItemResolved registers fn for item.resolved events.
func (bus *EventBus) SubscribeItemResolved(fn func(ItemResolvedPayload)) {
	bus.subscribe(EventItemResolved, func(p any) { fn(p.(ItemResolvedPayload)) })
}

// PublishWalletFunded enqueues a wallet.funded event.
func (bus *EventBus) PublishWalletFunded(p WalletFundedPayload) {
	bus.send(EventWalletFunded, p)
}

// SubscribeWalletFunded registers fn for wallet.funded events.
func (bus *EventBus) SubscribeWalletFunded(fn func(WalletFundedPayload)) {
	bus.subscribe(EventWalletFunded, func(p any) { fn(p.(WalletFundedPayload)) })
}

// PublishNotificationPublished enqueues a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers fn for notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}
