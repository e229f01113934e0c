package device

import (
	"bytes"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

var (
	panasonicHeader     = []byte{0x02, 0x20, 0xe0, 0x04}
	panasonicFirstFrame = []byte{0x02, 0x20, 0xe0, 0x04, 0x00, 0x00, 0x00, 0x06}
)

// PanasonicProfile is the Panasonic operating profile.
type PanasonicProfile uint8

const (
	ProfileNormal PanasonicProfile = iota
	ProfileBoost
	ProfileQuiet
)

func (p PanasonicProfile) String() string {
	switch p {
	case ProfileNormal:
		return "normal"
	case ProfileBoost:
		return "boost"
	case ProfileQuiet:
		return "quiet"
	}
	return "unknown"
}

var (
	panasonicModes = map[byte]HVACMode{
		0x0: ModeAuto,
		0x2: ModeDry,
		0x3: ModeCool,
		0x4: ModeHeat,
		0x6: ModeFan,
	}
	panasonicPower = map[byte]Power{
		0x8: PowerOff,
		0x9: PowerOn,
	}
	panasonicFans = map[byte]FanSpeed{
		0x3: FanSlowest,
		0x4: FanNotch2,
		0x5: FanNotch3,
		0x6: FanNotch4,
		0x7: FanNotch5,
		0xa: FanAuto,
	}
	panasonicSwings = map[byte]Swing{
		0x1: SwingHorizontal,
		0x2: SwingNotch2,
		0x3: SwingNotch3,
		0x4: SwingNotch4,
		0x5: SwingNotch5,
		0xf: SwingAuto,
	}
	panasonicProfiles = map[byte]PanasonicProfile{
		0x10: ProfileNormal,
		0x11: ProfileBoost,
		0x30: ProfileQuiet,
	}
)

// PanasonicHVAC is a Panasonic air conditioner state.
type PanasonicHVAC struct {
	Mode        *HVACMode
	Power       *Power
	Temperature Celsius
	Fan         *FanSpeed
	Swing       *Swing
	Profile     *PanasonicProfile
	Checksum    uint8
}

// Manufacturer returns the Panasonic manufacturer name.
func (PanasonicHVAC) Manufacturer() string { return "panasonic" }

// Fields implements ControlCode.
func (c PanasonicHVAC) Fields() map[string]string {
	f := newFieldSet(c.Manufacturer())
	setOpt(f, FieldMode, c.Mode)
	setOpt(f, FieldPower, c.Power)
	f.set(FieldTemperature, c.Temperature)
	setOpt(f, FieldFanSpeed, c.Fan)
	setOpt(f, FieldSwing, c.Swing)
	setOpt(f, FieldProfile, c.Profile)
	f.setUint(FieldChecksum, uint(c.Checksum))
	return f
}

func (PanasonicHVAC) controlCode() {}

// PanasonicHVACDecoder decodes the two-frame Panasonic transmission.
// The first frame is constant, the second carries the state.
func PanasonicHVACDecoder() Decoder {
	return DecoderFunc{DecoderName: "panasonic-hvac", Fn: decodePanasonic}
}

func decodePanasonic(frames []ir.DecodedFrame) []ControlCode {
	group := aehaWithHeader(frames, panasonicHeader)
	if len(group) < 2 {
		return nil
	}
	first, second := group[0], group[1]
	if !bytes.HasPrefix(first, panasonicFirstFrame) || len(second) < 19 {
		return nil
	}
	// Bit 0 of the temperature byte is always clear.
	if second[6]&0x01 != 0 {
		return nil
	}
	return []ControlCode{PanasonicHVAC{
		Mode:        lookup(panasonicModes, hi(second[5])),
		Power:       lookup(panasonicPower, lo(second[5])),
		Temperature: Celsius(16 + (second[6]>>1)&0x0f),
		Fan:         lookup(panasonicFans, hi(second[8])),
		Swing:       lookup(panasonicSwings, lo(second[8])),
		Profile:     lookup(panasonicProfiles, second[13]),
		Checksum:    second[18],
	}}
}
