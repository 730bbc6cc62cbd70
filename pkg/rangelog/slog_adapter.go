package rangelog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger. Useful for development when
// you want to watch ranging sessions in console output.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level (Error level for
// error events).
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.Address != "" {
		attrs = append(attrs, slog.String("address", event.Address))
	}
	if event.ConnectionHandle != 0 {
		attrs = append(attrs, slog.Uint64("connection_handle", uint64(event.ConnectionHandle)))
	}

	level := slog.LevelDebug

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Command != nil:
		attrs = append(attrs,
			slog.String("opcode", event.Command.Opcode),
			slog.String("status", event.Command.Status),
		)
		if event.Command.Retry > 0 {
			attrs = append(attrs, slog.Int("retry", event.Command.Retry))
		}
	case event.Measurement != nil:
		attrs = append(attrs,
			slog.Float64("distance_meters", event.Measurement.DistanceMeters),
			slog.Float64("confidence", event.Measurement.ConfidenceLevel),
		)
	case event.Error != nil:
		level = slog.LevelError
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "ranging", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
