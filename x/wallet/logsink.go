package wallet

import (
	"github.com/rs/zerolog"
)

// LogSink publishes wallet events as structured log entries.
type LogSink struct {
	logger zerolog.Logger
}

var _ Sink = LogSink{}

// NewLogSink returns a sink writing every event to the given logger.
func NewLogSink(logger zerolog.Logger) LogSink {
	return LogSink{logger: logger}
}

func (s LogSink) Publish(ev Event) {
	entry := s.logger.Info().
		Str("kind", string(ev.Kind)).
		Str("wallet", ev.Wallet.String()).
		Str("actor", ev.Actor.String())
	if ev.Proposal >= 0 {
		entry = entry.Int64("proposal", ev.Proposal)
	}
	if len(ev.Owner) != 0 {
		entry = entry.Str("owner", ev.Owner.String())
	}
	if len(ev.Target) != 0 {
		entry = entry.Str("target", ev.Target.String())
	}
	if ev.Threshold != 0 {
		entry = entry.Uint32("threshold", ev.Threshold)
	}
	if ev.Amount != 0 {
		entry = entry.Int64("amount", ev.Amount)
	}
	if len(ev.Payload) != 0 {
		entry = entry.Hex("payload", ev.Payload)
	}
	entry.Msg("wallet event")
}
