package log

import (
	"time"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

// Event is one step of a decode or encode trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// CaptureID groups the events of one capture (UUID).
	CaptureID string `cbor:"2,keyasint"`

	// Stage of the pipeline that emitted the event.
	Stage Stage `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// FrameIndex is the position of the frame within the capture, for
	// per-frame events.
	FrameIndex *int `cbor:"5,keyasint,omitempty"`

	// Protocol of the frame, for per-frame events.
	Protocol *ir.Protocol `cbor:"6,keyasint,omitempty"`

	// Source names where the input came from (file, case ID, "stdin").
	Source string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Input   *InputEvent     `cbor:"10,keyasint,omitempty"`
	Segment *SegmentEvent   `cbor:"11,keyasint,omitempty"`
	Frame   *FrameEvent     `cbor:"12,keyasint,omitempty"`
	Device  *DeviceEvent    `cbor:"13,keyasint,omitempty"`
	Encode  *EncodeEvent    `cbor:"14,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"15,keyasint,omitempty"`
}

// Stage identifies a pipeline stage.
type Stage uint8

const (
	// StageInput is text parsing and pulse intake.
	StageInput Stage = 0
	// StageSegment is frame segmentation.
	StageSegment Stage = 1
	// StageDemodulate is leader classification and bit recovery.
	StageDemodulate Stage = 2
	// StageFrame is protocol frame decoding.
	StageFrame Stage = 3
	// StageDevice is device decoding.
	StageDevice Stage = 4
	// StageEncode is frame encoding and serialization.
	StageEncode Stage = 5
)

var stageNames = [...]string{
	StageInput:      "INPUT",
	StageSegment:    "SEGMENT",
	StageDemodulate: "DEMOD",
	StageFrame:      "FRAME",
	StageDevice:     "DEVICE",
	StageEncode:     "ENCODE",
}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// ParseStage parses a stage name as printed by String.
func ParseStage(name string) (Stage, bool) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryResult is a successful stage output.
	CategoryResult Category = 0
	// CategoryMiss is a stage that ran but recognised nothing, such as an
	// unclassified frame or a capture no device decoder matched.
	CategoryMiss Category = 1
	// CategoryError is a failed stage.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryResult:
		return "RESULT"
	case CategoryMiss:
		return "MISS"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MaxTextSize bounds the text carried by Input and Encode events.
const MaxTextSize = 4096

// InputEvent describes the parsed input of a capture.
type InputEvent struct {
	// Format is the detected or requested text format.
	Format string `cbor:"1,keyasint,omitempty"`

	// Pulses is the number of pulses parsed.
	Pulses int `cbor:"2,keyasint"`

	// Text is the raw input (may be truncated).
	Text string `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Text was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// SegmentEvent describes the frames a capture was split into.
type SegmentEvent struct {
	// FrameSizes holds the pulse count of each frame.
	FrameSizes []int `cbor:"1,keyasint"`
}

// FrameEvent describes one demodulated or decoded frame.
type FrameEvent struct {
	// Pulses is the frame length including the leader.
	Pulses int `cbor:"1,keyasint"`

	// LeaderMark and LeaderSpace are the leader timings in microseconds.
	LeaderMark  uint32 `cbor:"2,keyasint"`
	LeaderSpace uint32 `cbor:"3,keyasint"`

	// Bits is the demodulated bit string.
	Bits string `cbor:"4,keyasint,omitempty"`

	// Summary is the decoded frame in text form.
	Summary string `cbor:"5,keyasint,omitempty"`
}

// DeviceEvent describes a control code produced by a device decoder.
type DeviceEvent struct {
	// Decoder is the name of the matching decoder, empty when none matched.
	Decoder string `cbor:"1,keyasint,omitempty"`

	// Manufacturer is the manufacturer tag of the code.
	Manufacturer string `cbor:"2,keyasint,omitempty"`

	// Fields are the decoded fields of the code.
	Fields map[string]string `cbor:"3,keyasint,omitempty"`
}

// EncodeEvent describes an encoding run.
type EncodeEvent struct {
	// Frames is the number of frames encoded.
	Frames int `cbor:"1,keyasint"`

	// Pulses is the number of pulses produced.
	Pulses int `cbor:"2,keyasint"`

	// WireText is the serialized output (may be truncated).
	WireText string `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if WireText was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures a failure at any stage.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// Truncate shortens s to MaxTextSize bytes, reporting whether it did.
func Truncate(s string) (string, bool) {
	if len(s) <= MaxTextSize {
		return s, false
	}
	return s[:MaxTextSize], true
}
