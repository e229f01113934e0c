package irremote

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/log"
)

// Encoder turns demodulated frames into pulses and wire text.
type Encoder struct {
	logger *slog.Logger
	trace  log.Logger
}

// NewEncoder creates an encoder. Only the logging fields of cfg are used.
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Encoder{logger: cfg.Logger, trace: cfg.TraceLogger}, nil
}

func (e *Encoder) newTracer() *tracer {
	return &tracer{sink: e.trace, logger: e.logger, captureID: uuid.NewString()}
}

// Encode returns the joined canonical pulses of frames.
func (e *Encoder) Encode(frames []ir.DemodulatedFrame) ([]ir.Pulse, error) {
	t := e.newTracer()
	pulses, err := ir.Encode(frames)
	if err != nil {
		t.failed(log.StageEncode, "encode", err)
		return nil, fmt.Errorf("encode: %w", err)
	}
	t.encoded(len(frames), len(pulses), "")
	return pulses, nil
}

// EncodeWireText encodes frames and serializes them as wire text.
func (e *Encoder) EncodeWireText(frames []ir.DemodulatedFrame) (string, error) {
	t := e.newTracer()
	pulses, err := ir.Encode(frames)
	if err != nil {
		t.failed(log.StageEncode, "encode", err)
		return "", fmt.Errorf("encode: %w", err)
	}
	text := ir.SerializeWireText(pulses)
	t.encoded(len(frames), len(pulses), text)
	return text, nil
}

// FramesFromBits builds one frame of protocol p per bit string.
// A repeat frame ignores its bit string.
func FramesFromBits(p ir.Protocol, bitStrings ...string) ([]ir.DemodulatedFrame, error) {
	frames := make([]ir.DemodulatedFrame, 0, len(bitStrings))
	for i, s := range bitStrings {
		bits, err := ir.ParseBits(s)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		f, err := ir.NewDemodulatedFrame(p, bits)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}
