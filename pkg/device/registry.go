package device

import (
	"sync"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

// Decoder recognises the frames of one kind of remote.
type Decoder interface {
	// Name identifies the decoder in logs and traces.
	Name() string

	// Decode returns the codes found in frames, or none when the frames
	// do not belong to this device.
	Decode(frames []ir.DecodedFrame) []ControlCode
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc struct {
	DecoderName string
	Fn          func(frames []ir.DecodedFrame) []ControlCode
}

// Name returns DecoderName.
func (d DecoderFunc) Name() string { return d.DecoderName }

// Decode calls Fn.
func (d DecoderFunc) Decode(frames []ir.DecodedFrame) []ControlCode {
	return d.Fn(frames)
}

// Registry is an ordered list of decoders. The first decoder returning a
// non-empty result wins. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders []Decoder
}

// NewRegistry creates a registry trying decoders in the given order.
func NewRegistry(decoders ...Decoder) *Registry {
	return &Registry{decoders: append([]Decoder(nil), decoders...)}
}

// DefaultRegistry returns a registry holding every built-in decoder in
// priority order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ToshibaTVDecoder(),
		SonyDecoder(),
		PanasonicHVACDecoder(),
		DaikinHVACDecoder(),
		HitachiHVACDecoder(),
		MitsubishiHVACDecoder(),
	)
}

// Register appends d with the lowest priority.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders = append(r.decoders, d)
}

// Decoders returns the registered decoders in priority order.
func (r *Registry) Decoders() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Decoder(nil), r.decoders...)
}

// Match returns the first decoder producing codes for frames along with
// those codes. It returns a nil decoder when nothing matched.
func (r *Registry) Match(frames []ir.DecodedFrame) (Decoder, []ControlCode) {
	for _, d := range r.Decoders() {
		if codes := d.Decode(frames); len(codes) > 0 {
			return d, codes
		}
	}
	return nil, nil
}

// Decode returns the codes of the first matching decoder, or a single
// Unknown holding frames when no decoder matched.
func (r *Registry) Decode(frames []ir.DecodedFrame) []ControlCode {
	if _, codes := r.Match(frames); len(codes) > 0 {
		return codes
	}
	return []ControlCode{Unknown{Frames: frames}}
}

// Decode runs the default registry over frames.
func Decode(frames []ir.DecodedFrame) []ControlCode {
	return defaultRegistry.Decode(frames)
}

var defaultRegistry = DefaultRegistry()
