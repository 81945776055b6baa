package audit

import (
	"context"
	"log/slog"

	"drivergate/pkg/requestcontext"
)

// ChannelPublisher hands events to the worker through a buffered
// channel. When the buffer is full the event is dropped with a warning
// rather than stalling the request path; the audit trail is best-effort,
// the admin response is not.
type ChannelPublisher struct {
	inbox chan Event
	log   *slog.Logger
}

var _ Publisher = (*ChannelPublisher)(nil)

func NewChannelPublisher(buffer int, log *slog.Logger) *ChannelPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelPublisher{inbox: make(chan Event, buffer), log: log}
}

// Inbox exposes the receive side for the worker.
func (p *ChannelPublisher) Inbox() <-chan Event { return p.inbox }

func (p *ChannelPublisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.log.Warn("audit inbox full, dropping event",
			"action", event.Action, "record_id", event.RecordID)
	}
}

// NopPublisher discards events. Used when a service is constructed
// without an audit pipeline (tests mostly).
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) {}
