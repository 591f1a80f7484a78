package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies transaction fields from the event context onto log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	fields := []struct {
		key   string
		value string
	}{
		{"tx_id", GetTxID(ctx)},
		{"list", GetList(ctx)},
		{"item", GetItem(ctx)},
		{"caller", GetCaller(ctx)},
	}
	for _, f := range fields {
		if f.value != "" {
			e.Str(f.key, f.value)
		}
	}
}
