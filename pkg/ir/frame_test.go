package ir

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeAEHA(t *testing.T) {
	bits := mustBits(t, "01000000 00000100 00000111 00100000 1")
	d, err := DecodeFrame(AEHAFrame{Bits: bits})
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	f, ok := d.(AEHA)
	if !ok {
		t.Fatalf("DecodeFrame returned %T, want AEHA", d)
	}
	if f.Stop != Hi {
		t.Errorf("Stop = %s, want 1", f.Stop)
	}
	want := []byte{0x02, 0x20, 0xe0, 0x04}
	if got := f.Bytes(); string(got) != string(want) {
		t.Errorf("Bytes() = % x, want % x", got, want)
	}
	if s := f.String(); !strings.HasPrefix(s, "AEHA [02 20 e0 04]") {
		t.Errorf("String() = %q", s)
	}
}

func TestDecodeAEHAShort(t *testing.T) {
	for _, bits := range []Bits{nil, {Hi}} {
		if _, err := DecodeFrame(AEHAFrame{Bits: bits}); !errors.Is(err, ErrInputIsEmpty) {
			t.Errorf("DecodeFrame(%d bits) error = %v, want ErrInputIsEmpty", len(bits), err)
		}
	}
}

func TestDecodeNEC(t *testing.T) {
	bits := mustBits(t, "00000010 11111101 01001000 10110111 1")
	d, err := DecodeFrame(NECFrame{Bits: bits})
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	f := d.(NEC)
	if f.Custom() != [2]byte{0x40, 0xbf} {
		t.Errorf("Custom() = % x, want 40 bf", f.Custom())
	}
	if f.Data() != [2]byte{0x12, 0xed} {
		t.Errorf("Data() = % x, want 12 ed", f.Data())
	}
	if f.Stop != Hi {
		t.Errorf("Stop = %s, want 1", f.Stop)
	}
}

func TestDecodeNECInsufficient(t *testing.T) {
	tests := []struct {
		n     int
		field string
	}{
		{0, "custom0 (NEC)"},
		{7, "custom0 (NEC)"},
		{15, "custom1 (NEC)"},
		{20, "data0 (NEC)"},
		{31, "data1 (NEC)"},
		{32, "stop bit (NEC)"},
	}
	for _, tt := range tests {
		_, err := DecodeFrame(NECFrame{Bits: make(Bits, tt.n)})
		if !errors.Is(err, ErrInsufficientInputData) {
			t.Errorf("%d bits: error = %v, want ErrInsufficientInputData", tt.n, err)
			continue
		}
		var ide *InsufficientDataError
		if !errors.As(err, &ide) || ide.Field != tt.field {
			t.Errorf("%d bits: field = %v, want %q", tt.n, err, tt.field)
		}
	}
}

func TestDecodeSIRC(t *testing.T) {
	tests := []struct {
		bits     string
		command  uint8
		address  uint8
		extended int
	}{
		{"1010100 10000", 21, 1, -1},
		{"1010100 10000000", 21, 1, -1},
		{"1010100 11101 01000000", 21, 23, 2},
	}
	for _, tt := range tests {
		d, err := DecodeFrame(SIRCFrame{Bits: mustBits(t, tt.bits)})
		if err != nil {
			t.Fatalf("DecodeFrame(%s) failed: %v", tt.bits, err)
		}
		s, ok := d.(SIRC)
		if !ok {
			t.Fatalf("DecodeFrame(%s) returned %T", tt.bits, d)
		}
		if s.CommandCode() != tt.command || s.AddressCode() != tt.address {
			t.Errorf("%s: command=%d address=%d, want %d %d", tt.bits, s.CommandCode(), s.AddressCode(), tt.command, tt.address)
		}
		if tt.extended >= 0 {
			if got := d.(SIRC20).ExtendedCode(); int(got) != tt.extended {
				t.Errorf("%s: extended = %d, want %d", tt.bits, got, tt.extended)
			}
		}
	}
}

func TestDecodeSIRCBadLength(t *testing.T) {
	for _, n := range []int{0, 11, 13, 16, 21} {
		if _, err := DecodeFrame(SIRCFrame{Bits: make(Bits, n)}); !errors.Is(err, ErrUnknownProtocol) {
			t.Errorf("%d bits: error = %v, want ErrUnknownProtocol", n, err)
		}
	}
}

func TestDecodeFramesStopsAtFirstError(t *testing.T) {
	frames := []DemodulatedFrame{
		NECRepeatFrame{},
		SIRCFrame{Bits: make(Bits, 13)},
		NECFrame{Bits: nil},
	}
	_, err := DecodeFrames(frames)
	if !errors.Is(err, ErrUnknownProtocol) {
		t.Fatalf("DecodeFrames error = %v, want ErrUnknownProtocol", err)
	}
	if !strings.HasPrefix(err.Error(), "frame 1:") {
		t.Errorf("error %q does not name frame 1", err)
	}
}

func TestDecodeUnknownPassesThrough(t *testing.T) {
	pulses := []Pulse{{417, 448}}
	d, err := DecodeFrame(UnknownFrame{Pulses: pulses})
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if d.Protocol() != ProtocolUnknown {
		t.Errorf("Protocol() = %s, want UNKNOWN", d.Protocol())
	}
}
