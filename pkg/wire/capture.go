package wire

import (
	"errors"
	"fmt"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
)

// FormatVersion is the Capture record version written by this package.
const FormatVersion uint8 = 1

// Record errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported capture record version")
	ErrInvalidFrame       = errors.New("invalid frame record")
)

// Capture is the wire form of one decoded transmission.
type Capture struct {
	Version   uint8   `cbor:"1,keyasint"`
	CaptureID string  `cbor:"2,keyasint,omitempty"`
	Frames    []Frame `cbor:"3,keyasint"`
	Codes     []Code  `cbor:"4,keyasint,omitempty"`
}

// Frame is the wire form of a demodulated frame.
type Frame struct {
	Protocol ir.Protocol `cbor:"1,keyasint"`
	// Bits are packed LSB-first; BitCount gives the length.
	Bits     []byte `cbor:"2,keyasint,omitempty"`
	BitCount uint16 `cbor:"3,keyasint,omitempty"`
	// Pulses holds mark, space, mark, space... for unknown frames.
	Pulses []uint32 `cbor:"4,keyasint,omitempty"`
}

// Code is the wire form of a control code.
type Code struct {
	Manufacturer string            `cbor:"1,keyasint,omitempty"`
	Fields       map[string]string `cbor:"2,keyasint"`
}

// NewCapture builds a record from pipeline output.
func NewCapture(id string, frames []ir.DemodulatedFrame, codes []device.ControlCode) *Capture {
	c := &Capture{
		Version:   FormatVersion,
		CaptureID: id,
		Frames:    make([]Frame, 0, len(frames)),
	}
	for _, f := range frames {
		c.Frames = append(c.Frames, FrameOf(f))
	}
	for _, code := range codes {
		c.Codes = append(c.Codes, Code{
			Manufacturer: code.Manufacturer(),
			Fields:       code.Fields(),
		})
	}
	return c
}

// FrameOf converts a demodulated frame to its wire form.
func FrameOf(f ir.DemodulatedFrame) Frame {
	out := Frame{Protocol: f.Protocol()}
	switch v := f.(type) {
	case ir.AEHAFrame:
		out.Bits, out.BitCount = PackBits(v.Bits), uint16(len(v.Bits))
	case ir.NECFrame:
		out.Bits, out.BitCount = PackBits(v.Bits), uint16(len(v.Bits))
	case ir.SIRCFrame:
		out.Bits, out.BitCount = PackBits(v.Bits), uint16(len(v.Bits))
	case ir.UnknownFrame:
		out.Pulses = make([]uint32, 0, 2*len(v.Pulses))
		for _, p := range v.Pulses {
			out.Pulses = append(out.Pulses, uint32(p.Mark), uint32(p.Space))
		}
	}
	return out
}

// Demodulated converts the record back into a demodulated frame.
func (f Frame) Demodulated() (ir.DemodulatedFrame, error) {
	if f.Protocol == ir.ProtocolUnknown {
		if len(f.Pulses)%2 != 0 {
			return nil, fmt.Errorf("%w: odd pulse value count %d", ErrInvalidFrame, len(f.Pulses))
		}
		pulses := make([]ir.Pulse, 0, len(f.Pulses)/2)
		for i := 0; i < len(f.Pulses); i += 2 {
			pulses = append(pulses, ir.Pulse{Mark: ir.Micros(f.Pulses[i]), Space: ir.Micros(f.Pulses[i+1])})
		}
		return ir.UnknownFrame{Pulses: pulses}, nil
	}
	if int(f.BitCount) > 8*len(f.Bits) {
		return nil, fmt.Errorf("%w: %d bits in %d bytes", ErrInvalidFrame, f.BitCount, len(f.Bits))
	}
	d, err := ir.NewDemodulatedFrame(f.Protocol, UnpackBits(f.Bits, int(f.BitCount)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	return d, nil
}

// DemodulatedFrames converts every frame of the record.
func (c *Capture) DemodulatedFrames() ([]ir.DemodulatedFrame, error) {
	out := make([]ir.DemodulatedFrame, 0, len(c.Frames))
	for i, f := range c.Frames {
		d, err := f.Demodulated()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// EncodeCapture encodes a capture record to CBOR bytes.
func EncodeCapture(c *Capture) ([]byte, error) {
	return Marshal(c)
}

// DecodeCapture decodes CBOR bytes into a capture record.
func DecodeCapture(data []byte) (*Capture, error) {
	var c Capture
	if err := Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode capture: %w", err)
	}
	if c.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	return &c, nil
}

// PackBits packs bits LSB-first into bytes.
func PackBits(bits ir.Bits) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b == ir.Hi {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// UnpackBits reverses PackBits, returning the first n bits of data.
func UnpackBits(data []byte, n int) ir.Bits {
	bits := make(ir.Bits, n)
	for i := range bits {
		if data[i/8]>>(i%8)&1 == 1 {
			bits[i] = ir.Hi
		}
	}
	return bits
}
