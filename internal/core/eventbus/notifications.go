package eventbus

import (
	"fmt"

	"github.com/colonyops/bounty/internal/core/todolist"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeItemConfirmed(func(p ItemConfirmedPayload) {
		if p.Item == nil {
			return
		}
		waiting := todolist.RoleOwner
		if p.By.Has(todolist.RoleOwner) {
			waiting = todolist.RoleCreator
		}
		r.notifyf(LevelInfo, "item %q confirmed by %s, waiting on %s", p.Item.Name, p.By, waiting)
	})

	r.bus.SubscribeItemCancelled(func(p ItemCancelledPayload) {
		if p.Item == nil {
			return
		}
		r.notifyf(LevelWarning, "item %q cancelled, %d refunded to %s", p.Item.Name, p.Refunded, p.Item.Creator.Short())
	})

	r.bus.SubscribeItemResolved(func(p ItemResolvedPayload) {
		if p.Item == nil {
			return
		}
		r.notifyf(LevelSuccess, "item %q finished, %d paid to %s", p.Item.Name, p.Paid, p.Owner.Short())
	})

	r.bus.SubscribeWalletFunded(func(p WalletFundedPayload) {
		r.notifyf(LevelInfo, "wallet %s funded with %d", p.Address.Short(), p.Amount)
	})
}

func (r *NotificationRouter) notifyf(level Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
