package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrNoGateway is returned by LogGateway for every message.
var ErrNoGateway = errors.New("no messaging gateway configured")

// LogGateway only logs messages. It stands in for a real gateway when none
// is configured, and reports every send as failed so nothing is counted as
// delivered.
type LogGateway struct {
	log zerolog.Logger
}

func NewLogGateway(log zerolog.Logger) *LogGateway {
	return &LogGateway{log: log.With().Str("component", "log-gateway").Logger()}
}

func (g *LogGateway) Send(_ context.Context, phoneNumber, message string) error {
	g.log.Info().Str("phone", phoneNumber).Str("message", message).Msg("Message not sent, no gateway configured")
	return ErrNoGateway
}
