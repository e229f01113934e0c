package ir

import (
	"fmt"
	"strings"
)

// Modulate returns the canonical pulse for bit b under protocol p.
func Modulate(p Protocol, b Bit) (Pulse, error) {
	t, ok := TimingOf(p)
	if !ok {
		return Pulse{}, ErrUnknownProtocol
	}
	if b == Hi {
		return t.One, nil
	}
	return t.Zero, nil
}

func modulateFrame(p Protocol, bits Bits) Frame {
	t, _ := TimingOf(p)
	frame := make(Frame, 0, len(bits)+1)
	frame = append(frame, t.Leader)
	for _, b := range bits {
		if b == Hi {
			frame = append(frame, t.One)
		} else {
			frame = append(frame, t.Zero)
		}
	}
	return frame
}

// EncodeFrame rebuilds canonical pulses for a demodulated frame: the
// protocol leader followed by one pulse per bit. A repeat frame encodes
// as the repeat leader and a single stop mark.
func EncodeFrame(frame DemodulatedFrame) (Frame, error) {
	switch f := frame.(type) {
	case AEHAFrame:
		return modulateFrame(ProtocolAEHA, f.Bits), nil
	case NECFrame:
		return modulateFrame(ProtocolNEC, f.Bits), nil
	case NECRepeatFrame:
		return modulateFrame(ProtocolNECRepeat, Bits{Hi}), nil
	case SIRCFrame:
		return modulateFrame(ProtocolSIRC, f.Bits), nil
	default:
		return nil, ErrUnknownProtocol
	}
}

// Join concatenates frames, setting the final space of every frame to
// ThresholdFrameGap so that Segment reproduces the same boundaries.
// The input frames are not modified.
func Join(frames []Frame) []Pulse {
	n := 0
	for _, f := range frames {
		n += len(f)
	}
	out := make([]Pulse, 0, n)
	for _, f := range frames {
		if len(f) == 0 {
			continue
		}
		out = append(out, f...)
		out[len(out)-1].Space = ThresholdFrameGap
	}
	return out
}

// Encode turns demodulated frames into a transmittable pulse sequence.
func Encode(frames []DemodulatedFrame) ([]Pulse, error) {
	encoded := make([]Frame, 0, len(frames))
	for i, f := range frames {
		e, err := EncodeFrame(f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		encoded = append(encoded, e)
	}
	return Join(encoded), nil
}

// SerializeWireText formats pulses as carrier-cycle hex text: for every
// pulse the mark then the space, each a 16-bit little-endian value
// written as four upper-case hex digits, without separators.
func SerializeWireText(pulses []Pulse) string {
	var sb strings.Builder
	sb.Grow(len(pulses) * 8)
	for _, p := range pulses {
		c := ToCarrier(p)
		writeLE16(&sb, uint16(c.Mark))
		writeLE16(&sb, uint16(c.Space))
	}
	return sb.String()
}

const hexDigits = "0123456789ABCDEF"

func writeLE16(sb *strings.Builder, v uint16) {
	lo, hi := byte(v), byte(v>>8)
	sb.WriteByte(hexDigits[lo>>4])
	sb.WriteByte(hexDigits[lo&0xf])
	sb.WriteByte(hexDigits[hi>>4])
	sb.WriteByte(hexDigits[hi&0xf])
}

// EncodeWireText encodes frames and serializes the result.
func EncodeWireText(frames []DemodulatedFrame) (string, error) {
	pulses, err := Encode(frames)
	if err != nil {
		return "", err
	}
	return SerializeWireText(pulses), nil
}
