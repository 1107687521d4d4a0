package services

import (
	"go.uber.org/zap"

	"github.com/vsinha/purchasing/pkg/infrastructure/events"
)

// publish appends event to its stream. Publishing is best effort: the write it
// describes has already been stored, so a failure is only logged.
func publish(pub events.Publisher, log *zap.Logger, event events.Event) {
	if pub == nil {
		return
	}
	if err := pub.AppendEvent(event.StreamID(), event); err != nil {
		log.Warn("failed to publish event",
			zap.String("type", event.Type()),
			zap.String("stream", event.StreamID()),
			zap.Error(err),
		)
	}
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
