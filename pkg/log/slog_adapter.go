package log

import (
	"context"
	"log/slog"
	"sort"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see the trace in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("capture_id", event.CaptureID),
		slog.String("stage", event.Stage.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.FrameIndex != nil {
		attrs = append(attrs, slog.Int("frame", *event.FrameIndex))
	}
	if event.Protocol != nil {
		attrs = append(attrs, slog.String("protocol", event.Protocol.String()))
	}

	switch {
	case event.Input != nil:
		attrs = append(attrs,
			slog.String("format", event.Input.Format),
			slog.Int("pulses", event.Input.Pulses),
		)
	case event.Segment != nil:
		attrs = append(attrs, slog.Any("frame_sizes", event.Segment.FrameSizes))
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("pulses", event.Frame.Pulses),
			slog.Any("leader", []uint32{event.Frame.LeaderMark, event.Frame.LeaderSpace}),
		)
		if event.Frame.Bits != "" {
			attrs = append(attrs, slog.Int("bits", len(event.Frame.Bits)))
		}
		if event.Frame.Summary != "" {
			attrs = append(attrs, slog.String("summary", event.Frame.Summary))
		}
	case event.Device != nil:
		if event.Device.Decoder != "" {
			attrs = append(attrs, slog.String("decoder", event.Device.Decoder))
		}
		if event.Device.Manufacturer != "" {
			attrs = append(attrs, slog.String("manufacturer", event.Device.Manufacturer))
		}
		keys := make([]string, 0, len(event.Device.Fields))
		for k := range event.Device.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]any, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, slog.String(k, event.Device.Fields[k]))
		}
		if len(fields) > 0 {
			attrs = append(attrs, slog.Group("fields", fields...))
		}
	case event.Encode != nil:
		attrs = append(attrs,
			slog.Int("frames", event.Encode.Frames),
			slog.Int("pulses", event.Encode.Pulses),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_stage", event.Error.Stage.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
