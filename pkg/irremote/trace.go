package irremote

import (
	"log/slog"
	"time"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// tracer emits the trace events of one capture.
type tracer struct {
	sink      log.Logger
	logger    *slog.Logger
	captureID string
	source    string
}

func (t *tracer) emit(e log.Event) {
	e.Timestamp = time.Now()
	e.CaptureID = t.captureID
	e.Source = t.source
	t.sink.Log(e)
}

func (t *tracer) debugLog(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, append([]any{"capture", t.captureID}, args...)...)
	}
}

func (t *tracer) input(format, text string, pulses int) {
	e := &log.InputEvent{Format: format, Pulses: pulses}
	e.Text, e.Truncated = log.Truncate(text)
	t.emit(log.Event{Stage: log.StageInput, Input: e})
	t.debugLog("input parsed", "format", format, "pulses", pulses)
}

func (t *tracer) segmented(frames []ir.Frame) {
	sizes := make([]int, len(frames))
	for i, f := range frames {
		sizes[i] = len(f)
	}
	t.emit(log.Event{Stage: log.StageSegment, Segment: &log.SegmentEvent{FrameSizes: sizes}})
	t.debugLog("segmented", "frames", len(frames))
}

func (t *tracer) demodulated(i int, raw ir.Frame, f ir.DemodulatedFrame) {
	p := f.Protocol()
	e := log.Event{
		Stage:      log.StageDemodulate,
		FrameIndex: &i,
		Protocol:   &p,
		Frame: &log.FrameEvent{
			Pulses:      len(raw),
			LeaderMark:  uint32(raw.Leader().Mark),
			LeaderSpace: uint32(raw.Leader().Space),
			Bits:        bitsOf(f).String(),
		},
	}
	if p == ir.ProtocolUnknown {
		e.Category = log.CategoryMiss
	}
	t.emit(e)
}

func (t *tracer) decoded(i int, f ir.DecodedFrame) {
	p := f.Protocol()
	t.emit(log.Event{
		Stage:      log.StageFrame,
		FrameIndex: &i,
		Protocol:   &p,
		Frame:      &log.FrameEvent{Summary: f.String()},
	})
}

func (t *tracer) codes(d device.Decoder, codes []device.ControlCode) {
	if d == nil {
		t.emit(log.Event{Stage: log.StageDevice, Category: log.CategoryMiss, Device: &log.DeviceEvent{}})
		t.debugLog("no device decoder matched")
		return
	}
	for _, c := range codes {
		t.emit(log.Event{Stage: log.StageDevice, Device: &log.DeviceEvent{
			Decoder:      d.Name(),
			Manufacturer: c.Manufacturer(),
			Fields:       c.Fields(),
		}})
	}
	t.debugLog("device decoded", "decoder", d.Name(), "codes", len(codes))
}

func (t *tracer) encoded(frames, pulses int, text string) {
	e := &log.EncodeEvent{Frames: frames, Pulses: pulses}
	e.WireText, e.Truncated = log.Truncate(text)
	t.emit(log.Event{Stage: log.StageEncode, Encode: e})
	t.debugLog("encoded", "frames", frames, "pulses", pulses)
}

func (t *tracer) failed(stage log.Stage, context string, err error) {
	t.emit(log.Event{
		Stage:    stage,
		Category: log.CategoryError,
		Error:    &log.ErrorEventData{Stage: stage, Message: err.Error(), Context: context},
	})
	t.debugLog("stage failed", "stage", stage.String(), "error", err)
}

func bitsOf(f ir.DemodulatedFrame) ir.Bits {
	switch v := f.(type) {
	case ir.AEHAFrame:
		return v.Bits
	case ir.NECFrame:
		return v.Bits
	case ir.SIRCFrame:
		return v.Bits
	}
	return nil
}
