package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
)

func mustBits(t *testing.T, s string) ir.Bits {
	t.Helper()
	b, err := ir.ParseBits(s)
	if err != nil {
		t.Fatalf("ParseBits(%q) failed: %v", s, err)
	}
	return b
}

func sampleFrames(t *testing.T) []ir.DemodulatedFrame {
	return []ir.DemodulatedFrame{
		ir.UnknownFrame{Pulses: []ir.Pulse{{Mark: 417, Space: 448}, {Mark: 418, Space: 25329}}},
		ir.AEHAFrame{Bits: mustBits(t, "01000000 00000100 00000111 00100000 1")},
		ir.NECFrame{Bits: mustBits(t, "00000010 11111101 01001000 10110111 1")},
		ir.NECRepeatFrame{},
		ir.SIRCFrame{Bits: mustBits(t, "1010100 10000")},
	}
}

func TestCaptureRoundTrip(t *testing.T) {
	frames := sampleFrames(t)
	codes := []device.ControlCode{device.Unknown{}}
	c := NewCapture("id-1", frames, codes)

	data, err := EncodeCapture(c)
	if err != nil {
		t.Fatalf("EncodeCapture failed: %v", err)
	}
	decoded, err := DecodeCapture(data)
	if err != nil {
		t.Fatalf("DecodeCapture failed: %v", err)
	}
	if decoded.CaptureID != "id-1" || decoded.Version != FormatVersion {
		t.Errorf("header: got %q v%d", decoded.CaptureID, decoded.Version)
	}
	if len(decoded.Codes) != 1 || decoded.Codes[0].Fields["frames"] != "0" {
		t.Errorf("Codes: got %+v", decoded.Codes)
	}

	got, err := decoded.DemodulatedFrames()
	if err != nil {
		t.Fatalf("DemodulatedFrames failed: %v", err)
	}
	if !reflect.DeepEqual(got, frames) {
		t.Errorf("frames mismatch:\n got  %v\n want %v", got, frames)
	}
}

func TestCaptureDeterministic(t *testing.T) {
	a := NewCapture("x", sampleFrames(t), nil)
	b := NewCapture("x", sampleFrames(t), nil)
	da, _ := EncodeCapture(a)
	db, _ := EncodeCapture(b)
	if !bytes.Equal(da, db) {
		t.Error("equal captures encoded differently")
	}
	b.CaptureID = "y"
	if db, _ = EncodeCapture(b); bytes.Equal(da, db) {
		t.Error("different captures encoded equally")
	}
}

func TestDecodeCaptureVersion(t *testing.T) {
	data, err := Marshal(Capture{Version: 9})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := DecodeCapture(data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("DecodeCapture error = %v, want ErrUnsupportedVersion", err)
	}
	if _, err := DecodeCapture([]byte{0xff}); err == nil {
		t.Error("DecodeCapture should fail on invalid CBOR")
	}
}

func TestFrameDemodulatedInvalid(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"odd pulses", Frame{Protocol: ir.ProtocolUnknown, Pulses: []uint32{1, 2, 3}}},
		{"bit count too large", Frame{Protocol: ir.ProtocolNEC, Bits: []byte{0}, BitCount: 9}},
		{"bad protocol", Frame{Protocol: ir.Protocol(42)}},
	}
	for _, tt := range tests {
		if _, err := tt.frame.Demodulated(); !errors.Is(err, ErrInvalidFrame) {
			t.Errorf("%s: error = %v, want ErrInvalidFrame", tt.name, err)
		}
	}
}

func TestPackBits(t *testing.T) {
	bits := mustBits(t, "01000000 0000010")
	packed := PackBits(bits)
	if !bytes.Equal(packed, []byte{0x02, 0x20}) {
		t.Errorf("PackBits = % x, want 02 20", packed)
	}
	if got := UnpackBits(packed, len(bits)); !reflect.DeepEqual(got, bits) {
		t.Errorf("UnpackBits = %s, want %s", got, bits)
	}
}

func TestCaptureStream(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCaptures(&buf, NewCapture("a", sampleFrames(t), nil), NewCapture("b", nil, nil))
	if err != nil {
		t.Fatalf("WriteCaptures failed: %v", err)
	}
	single, err := EncodeCapture(NewCapture("c", nil, nil))
	if err != nil {
		t.Fatalf("EncodeCapture failed: %v", err)
	}
	buf.Write(single)

	got, err := ReadCaptures(&buf)
	if err != nil {
		t.Fatalf("ReadCaptures failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("records: got %d, want 3", len(got))
	}
	for i, id := range []string{"a", "b", "c"} {
		if got[i].CaptureID != id {
			t.Errorf("record %d: got %q, want %q", i, got[i].CaptureID, id)
		}
	}
	if len(got[0].Frames) != len(sampleFrames(t)) {
		t.Errorf("record a frames: got %d", len(got[0].Frames))
	}
}

func TestReadCapturesErrors(t *testing.T) {
	got, err := ReadCaptures(bytes.NewReader(nil))
	if err != nil || len(got) != 0 {
		t.Errorf("empty stream: got %v, %v", got, err)
	}

	var buf bytes.Buffer
	if err := WriteCaptures(&buf, NewCapture("ok", nil, nil), &Capture{Version: 7}); err != nil {
		t.Fatalf("WriteCaptures failed: %v", err)
	}
	if _, err := ReadCaptures(&buf); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}

	if _, err := ReadCaptures(bytes.NewReader([]byte{0xff})); err == nil {
		t.Error("ReadCaptures should fail on invalid CBOR")
	}
}
