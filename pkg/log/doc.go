// Package log records decode and encode traces.
//
// A trace is a stream of Events, one per pipeline stage and frame, grouped
// by capture ID. It is separate from operational logging (slog): the trace
// is a machine-readable record of how a capture was interpreted, used to
// debug captures that decode wrongly or not at all.
//
// # Basic Usage
//
//	// For development: trace to console via slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// For analysis: write to a trace file
//	cfg.TraceLogger, _ = log.NewFileLogger("capture.irlog")
//
//	// Both: use MultiLogger
//	cfg.TraceLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries one payload matching its stage:
//   - Input: parsed input (InputEvent)
//   - Segment: frame boundaries (SegmentEvent)
//   - Demodulate, Frame: per-frame bits and summary (FrameEvent)
//   - Device: control codes (DeviceEvent)
//   - Encode: encoder output (EncodeEvent)
//
// Failures at any stage carry ErrorEventData.
//
// # File Format
//
// Trace files are a CBOR stream with the .irlog extension. The ir-log CLI
// views, filters and exports them.
package log
