package ir

import (
	"fmt"
	"slices"
)

// DemodulatedFrame is a frame after line decoding. The concrete type is
// one of AEHAFrame, NECFrame, NECRepeatFrame, SIRCFrame or UnknownFrame.
type DemodulatedFrame interface {
	// Protocol returns the protocol whose leader matched.
	Protocol() Protocol
	fmt.Stringer
	demodulated()
}

// AEHAFrame holds the payload bits of an AEHA frame, stop bit included.
type AEHAFrame struct {
	Bits Bits
}

// NECFrame holds the payload bits of an NEC frame, stop bit included.
type NECFrame struct {
	Bits Bits
}

// NECRepeatFrame marks an NEC key-held repeat.
type NECRepeatFrame struct{}

// SIRCFrame holds the payload bits of a SIRC frame.
type SIRCFrame struct {
	Bits Bits
}

// UnknownFrame keeps the raw pulses of a frame no template matched.
type UnknownFrame struct {
	Pulses []Pulse
}

func (AEHAFrame) Protocol() Protocol      { return ProtocolAEHA }
func (NECFrame) Protocol() Protocol       { return ProtocolNEC }
func (NECRepeatFrame) Protocol() Protocol { return ProtocolNECRepeat }
func (SIRCFrame) Protocol() Protocol      { return ProtocolSIRC }
func (UnknownFrame) Protocol() Protocol   { return ProtocolUnknown }

func (f AEHAFrame) String() string    { return "AEHA " + f.Bits.String() }
func (f NECFrame) String() string     { return "NEC " + f.Bits.String() }
func (NECRepeatFrame) String() string { return "NEC (repeat)" }
func (f SIRCFrame) String() string    { return "SIRC " + f.Bits.String() }
func (f UnknownFrame) String() string { return fmt.Sprintf("UNKNOWN %v", f.Pulses) }

func (AEHAFrame) demodulated()      {}
func (NECFrame) demodulated()       {}
func (NECRepeatFrame) demodulated() {}
func (SIRCFrame) demodulated()      {}
func (UnknownFrame) demodulated()   {}

// NewDemodulatedFrame builds a frame of protocol p carrying bits.
// It fails with ErrUnknownProtocol for ProtocolUnknown.
func NewDemodulatedFrame(p Protocol, bits Bits) (DemodulatedFrame, error) {
	switch p {
	case ProtocolAEHA:
		return AEHAFrame{Bits: slices.Clone(bits)}, nil
	case ProtocolNEC:
		return NECFrame{Bits: slices.Clone(bits)}, nil
	case ProtocolNECRepeat:
		return NECRepeatFrame{}, nil
	case ProtocolSIRC:
		return SIRCFrame{Bits: slices.Clone(bits)}, nil
	default:
		return nil, ErrUnknownProtocol
	}
}

// SIRC marks within this distance of sircOneMark read as Hi.
const (
	sircOneMark       Micros = 1200
	sircMarkTolerance Micros = 100
)

// DemodulatePulseDistance decodes an AEHA or NEC pulse: Hi when the space
// is at least twice the mark.
func DemodulatePulseDistance(p Pulse) Bit {
	if uint64(p.Mark)*2 <= uint64(p.Space) {
		return Hi
	}
	return Lo
}

// DemodulatePulseWidth decodes a SIRC pulse: Hi when the mark lies in
// [1100us, 1300us]. The space is ignored.
func DemodulatePulseWidth(p Pulse) Bit {
	if sircOneMark-sircMarkTolerance <= p.Mark && p.Mark <= sircOneMark+sircMarkTolerance {
		return Hi
	}
	return Lo
}

func demodulateWith(pulses []Pulse, fn func(Pulse) Bit) Bits {
	bits := make(Bits, len(pulses))
	for i, p := range pulses {
		bits[i] = fn(p)
	}
	return bits
}

// Demodulate classifies a frame by its leader and decodes the remaining
// pulses with the matching line code. Frames without a recognised leader
// become UnknownFrame with a copy of their pulses.
func Demodulate(frame Frame) DemodulatedFrame {
	payload := frame.Payload()
	switch Classify(frame.Leader()) {
	case ProtocolAEHA:
		return AEHAFrame{Bits: demodulateWith(payload, DemodulatePulseDistance)}
	case ProtocolNEC:
		return NECFrame{Bits: demodulateWith(payload, DemodulatePulseDistance)}
	case ProtocolSIRC:
		return SIRCFrame{Bits: demodulateWith(payload, DemodulatePulseWidth)}
	case ProtocolNECRepeat:
		return NECRepeatFrame{}
	default:
		return UnknownFrame{Pulses: slices.Clone([]Pulse(frame))}
	}
}

// DemodulateAll demodulates every frame, preserving order.
func DemodulateAll(frames []Frame) []DemodulatedFrame {
	out := make([]DemodulatedFrame, len(frames))
	for i, f := range frames {
		out[i] = Demodulate(f)
	}
	return out
}
