// Package eventbus provides a typed publish/subscribe event bus that carries
// list and item lifecycle notifications out of the transition services.
package eventbus

import (
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
)

// Event names a published event type.
type Event string

const (
	// Keep list sorted A-Z
	EventItemAdded             Event = "item.added"
	EventItemCancelled         Event = "item.cancelled"
	EventItemConfirmed         Event = "item.confirmed"
	EventItemResolved          Event = "item.resolved"
	EventListCreated           Event = "list.created"
	EventNotificationPublished Event = "notification.published"
	EventWalletFunded          Event = "wallet.funded"
)

// ListCreatedPayload is emitted after a list is allocated.
type ListCreatedPayload struct {
	TxID     string
	Address  ledger.Address
	List     *todolist.List
	Reserved uint64
}

// ItemAddedPayload is emitted after an item is added and its bounty escrowed.
type ItemAddedPayload struct {
	TxID      string
	List      ledger.Address
	Address   ledger.Address
	Item      *todolist.Item
	Bounty    uint64
	Deposited uint64
}

// ItemConfirmedPayload is emitted when a party confirms an item that is
// still waiting on the other party.
type ItemConfirmedPayload struct {
	TxID    string
	List    ledger.Address
	Address ledger.Address
	Item    *todolist.Item
	By      todolist.Role
}

// ItemCancelledPayload is emitted after an item's bounty is refunded.
type ItemCancelledPayload struct {
	TxID     string
	List     ledger.Address
	Address  ledger.Address
	Item     *todolist.Item
	Refunded uint64
}

// ItemResolvedPayload is emitted after both parties confirm and the bounty
// is paid to the list owner.
type ItemResolvedPayload struct {
	TxID    string
	List    ledger.Address
	Address ledger.Address
	Item    *todolist.Item
	Owner   ledger.Address
	Paid    uint64
}

// WalletFundedPayload is emitted after an airdrop.
type WalletFundedPayload struct {
	TxID    string
	Address ledger.Address
	Amount  uint64
}

// Level grades a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// NotificationPublishedPayload carries a human-readable notice.
type NotificationPublishedPayload struct {
	Level   Level
	Message string
}
