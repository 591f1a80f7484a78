package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log all event activity at debug level.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		logger.Debug().
			Str("event", string(event)).
			Str("tx_id", txIDOf(payload)).
			Msg("event fired")
	})

	bus.OnDrop(func(event Event, payload any) {
		logger.Warn().
			Str("event", string(event)).
			Str("tx_id", txIDOf(payload)).
			Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func txIDOf(payload any) string {
	switch p := payload.(type) {
	case ListCreatedPayload:
		return p.TxID
	case ItemAddedPayload:
		return p.TxID
	case ItemConfirmedPayload:
		return p.TxID
	case ItemCancelledPayload:
		return p.TxID
	case ItemResolvedPayload:
		return p.TxID
	case WalletFundedPayload:
		return p.TxID
	default:
		return ""
	}
}
