package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Operation creates a component logger that also carries the operation name
// under the "op" key.
func Operation(component, op string) zerolog.Logger {
	return log.With().Str("cmp", component).Str("op", op).Logger()
}
