package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// eventCapturer is the part of *sentry.Hub the handler needs.
type eventCapturer interface {
	CaptureEvent(event *sentry.Event) *sentry.EventID
}

// tagKeys are promoted from attributes to Sentry tags.
var tagKeys = map[string]bool{
	"action":     true,
	"content_id": true,
	"user_id":    true,
	"request_id": true,
}

// SentryHandler is an slog.Handler that reports ERROR+ records to Sentry.
type SentryHandler struct {
	hub   eventCapturer
	attrs []slog.Attr
	group string
}

func NewSentryHandler(hub eventCapturer) *SentryHandler {
	return &SentryHandler{hub: hub}
}

// Enabled only handles ERROR and above.
func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = record.Message
	event.Timestamp = record.Time
	event.Logger = "slog"

	add := func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		switch {
		case tagKeys[a.Key]:
			event.Tags[a.Key] = a.Value.String()
		case a.Key == "error":
			event.Extra["error"] = a.Value.String()
			if err, ok := a.Value.Any().(error); ok {
				event.Exception = []sentry.Exception{{
					Type:  fmt.Sprintf("%T", err),
					Value: err.Error(),
				}}
			}
		default:
			event.Extra[key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(add)

	h.hub.CaptureEvent(event)
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SentryHandler{
		hub:   h.hub,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
		group: h.group,
	}
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &SentryHandler{hub: h.hub, attrs: h.attrs, group: group}
}
