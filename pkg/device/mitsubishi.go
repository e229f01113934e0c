package device

import "github.com/infrared-remote/ir-go/pkg/ir"

var mitsubishiHeader = []byte{0x23, 0xcb, 0x26, 0x01, 0x00}

var mitsubishiModes = map[byte]HVACMode{
	0x1: ModeHeat,
	0x2: ModeDry,
	0x3: ModeCool,
	0x4: ModeAuto,
}

// MitsubishiElectricHVAC is a Mitsubishi Electric air conditioner state.
type MitsubishiElectricHVAC struct {
	Temperature Celsius
	Mode        *HVACMode
	Power       Power
	Checksum    uint8
}

// Manufacturer returns the Mitsubishi Electric manufacturer name.
func (MitsubishiElectricHVAC) Manufacturer() string { return "mitsubishi electric" }

// Fields implements ControlCode.
func (c MitsubishiElectricHVAC) Fields() map[string]string {
	f := newFieldSet(c.Manufacturer())
	f.set(FieldTemperature, c.Temperature)
	setOpt(f, FieldMode, c.Mode)
	f.set(FieldPower, c.Power)
	f.setUint(FieldChecksum, uint(c.Checksum))
	return f
}

func (MitsubishiElectricHVAC) controlCode() {}

// MitsubishiHVACDecoder decodes Mitsubishi Electric frames of at least
// 18 bytes.
func MitsubishiHVACDecoder() Decoder {
	return DecoderFunc{DecoderName: "mitsubishi-hvac", Fn: decodeMitsubishi}
}

func decodeMitsubishi(frames []ir.DecodedFrame) []ControlCode {
	var codes []ControlCode
	for _, b := range aehaWithHeader(frames, mitsubishiHeader) {
		if len(b) < 18 {
			continue
		}
		codes = append(codes, MitsubishiElectricHVAC{
			Temperature: Celsius(16 + lo(b[7])),
			Mode:        lookup(mitsubishiModes, (b[6]>>3)&0x07),
			Power:       Power((b[5]>>5)&0x01 != 0),
			Checksum:    b[17],
		})
	}
	return codes
}
