package ir

import (
	"fmt"
	"slices"
)

// DecodedFrame is a protocol-typed frame. The concrete type is one of
// AEHA, NEC, NECRepeat, SIRC12, SIRC15, SIRC20 or UnknownDecoded.
type DecodedFrame interface {
	Protocol() Protocol
	fmt.Stringer
	decoded()
}

// AEHA is a byte-oriented AEHA frame. Octets holds every payload bit
// except the trailing stop bit; the last octet may be shorter than 8 bits.
type AEHA struct {
	Octets []Bits
	Stop   Bit
}

// Bytes folds each octet LSB-first.
func (f AEHA) Bytes() []byte {
	return Bytes(f.Octets)
}

// NEC is an NEC frame: two custom (address) bytes, two data bytes and the stop bit.
type NEC struct {
	Custom0 [8]Bit
	Custom1 [8]Bit
	Data0   [8]Bit
	Data1   [8]Bit
	Stop    Bit
}

// Custom returns the two custom code bytes.
func (f NEC) Custom() [2]byte {
	return [2]byte{FoldByte(f.Custom0[:]), FoldByte(f.Custom1[:])}
}

// Data returns the two data bytes.
func (f NEC) Data() [2]byte {
	return [2]byte{FoldByte(f.Data0[:]), FoldByte(f.Data1[:])}
}

// NECRepeat is a decoded NEC repeat marker.
type NECRepeat struct{}

// SIRC12 is the 12-bit Sony frame.
type SIRC12 struct {
	Command [7]Bit
	Address [5]Bit
}

// SIRC15 is the 15-bit Sony frame.
type SIRC15 struct {
	Command [7]Bit
	Address [8]Bit
}

// SIRC20 is the 20-bit Sony frame.
type SIRC20 struct {
	Command  [7]Bit
	Address  [5]Bit
	Extended [8]Bit
}

// SIRC is implemented by every SIRC variant.
type SIRC interface {
	DecodedFrame
	CommandCode() uint8
	AddressCode() uint8
}

// UnknownDecoded carries the pulses of an unclassified frame through decoding.
type UnknownDecoded struct {
	Pulses []Pulse
}

func (AEHA) Protocol() Protocol           { return ProtocolAEHA }
func (NEC) Protocol() Protocol            { return ProtocolNEC }
func (NECRepeat) Protocol() Protocol      { return ProtocolNECRepeat }
func (SIRC12) Protocol() Protocol         { return ProtocolSIRC }
func (SIRC15) Protocol() Protocol         { return ProtocolSIRC }
func (SIRC20) Protocol() Protocol         { return ProtocolSIRC }
func (UnknownDecoded) Protocol() Protocol { return ProtocolUnknown }

func (AEHA) decoded()           {}
func (NEC) decoded()            {}
func (NECRepeat) decoded()      {}
func (SIRC12) decoded()         {}
func (SIRC15) decoded()         {}
func (SIRC20) decoded()         {}
func (UnknownDecoded) decoded() {}

func (f SIRC12) CommandCode() uint8 { return FoldByte(f.Command[:]) }
func (f SIRC12) AddressCode() uint8 { return FoldByte(f.Address[:]) }
func (f SIRC15) CommandCode() uint8 { return FoldByte(f.Command[:]) }
func (f SIRC15) AddressCode() uint8 { return FoldByte(f.Address[:]) }
func (f SIRC20) CommandCode() uint8 { return FoldByte(f.Command[:]) }
func (f SIRC20) AddressCode() uint8 { return FoldByte(f.Address[:]) }

// ExtendedCode returns the extended byte of a 20-bit frame.
func (f SIRC20) ExtendedCode() uint8 { return FoldByte(f.Extended[:]) }

func (f AEHA) String() string {
	return fmt.Sprintf("AEHA [% x] stop=%s", f.Bytes(), f.Stop)
}

func (f NEC) String() string {
	c, d := f.Custom(), f.Data()
	return fmt.Sprintf("NEC custom=%02x%02x data=%02x%02x stop=%s", c[0], c[1], d[0], d[1], f.Stop)
}

func (NECRepeat) String() string { return "NEC (repeat)" }

func (f SIRC12) String() string {
	return fmt.Sprintf("SIRC12 command=%d address=%d", f.CommandCode(), f.AddressCode())
}

func (f SIRC15) String() string {
	return fmt.Sprintf("SIRC15 command=%d address=%d", f.CommandCode(), f.AddressCode())
}

func (f SIRC20) String() string {
	return fmt.Sprintf("SIRC20 command=%d address=%d extended=%d", f.CommandCode(), f.AddressCode(), f.ExtendedCode())
}

func (f UnknownDecoded) String() string { return fmt.Sprintf("UNKNOWN %v", f.Pulses) }

// Bit counts of the SIRC variants.
const (
	sirc12Bits = 12
	sirc15Bits = 15
	sirc20Bits = 20
)

// DecodeFrame converts a demodulated frame into its protocol structure.
func DecodeFrame(frame DemodulatedFrame) (DecodedFrame, error) {
	switch f := frame.(type) {
	case AEHAFrame:
		return decodeAEHA(f.Bits)
	case NECFrame:
		return decodeNEC(f.Bits)
	case NECRepeatFrame:
		return NECRepeat{}, nil
	case SIRCFrame:
		return decodeSIRC(f.Bits)
	case UnknownFrame:
		return UnknownDecoded{Pulses: slices.Clone(f.Pulses)}, nil
	default:
		return nil, ErrUnknownProtocol
	}
}

// DecodeFrames decodes frames in order and stops at the first failure.
func DecodeFrames(frames []DemodulatedFrame) ([]DecodedFrame, error) {
	out := make([]DecodedFrame, 0, len(frames))
	for i, f := range frames {
		d, err := DecodeFrame(f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeAEHA(bits Bits) (DecodedFrame, error) {
	if len(bits) < 2 {
		return nil, ErrInputIsEmpty
	}
	last := len(bits) - 1
	return AEHA{Octets: Octets(bits[:last]), Stop: bits[last]}, nil
}

func decodeNEC(bits Bits) (DecodedFrame, error) {
	var f NEC
	fields := []struct {
		dst   *[8]Bit
		name  string
		start int
	}{
		{&f.Custom0, "custom0 (NEC)", 0},
		{&f.Custom1, "custom1 (NEC)", 8},
		{&f.Data0, "data0 (NEC)", 16},
		{&f.Data1, "data1 (NEC)", 24},
	}
	for _, fd := range fields {
		if len(bits) < fd.start+8 {
			return nil, &InsufficientDataError{Field: fd.name}
		}
		copy(fd.dst[:], bits[fd.start:fd.start+8])
	}
	if len(bits) < 33 {
		return nil, &InsufficientDataError{Field: "stop bit (NEC)"}
	}
	f.Stop = bits[32]
	return f, nil
}

func decodeSIRC(bits Bits) (DecodedFrame, error) {
	switch len(bits) {
	case sirc12Bits:
		var f SIRC12
		copy(f.Command[:], bits[0:7])
		copy(f.Address[:], bits[7:12])
		return f, nil
	case sirc15Bits:
		var f SIRC15
		copy(f.Command[:], bits[0:7])
		copy(f.Address[:], bits[7:15])
		return f, nil
	case sirc20Bits:
		var f SIRC20
		copy(f.Command[:], bits[0:7])
		copy(f.Address[:], bits[7:12])
		copy(f.Extended[:], bits[12:20])
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %d-bit SIRC frame", ErrUnknownProtocol, len(bits))
	}
}
