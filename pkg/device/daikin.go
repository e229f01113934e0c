package device

import (
	"bytes"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

var (
	daikinHeader      = []byte{0x11, 0xda, 0x27, 0x00}
	daikinSecondFrame = []byte{0x11, 0xda, 0x27, 0x00, 0x42, 0x00, 0x00, 0x54}
)

var (
	daikinComfort = map[[8]byte]Toggle{
		{0x11, 0xda, 0x27, 0x00, 0xc5, 0x00, 0x10, 0xe7}: Enabled,
		{0x11, 0xda, 0x27, 0x00, 0xc5, 0x00, 0x00, 0xd7}: Disabled,
	}
	daikinModes = map[byte]HVACMode{
		0x0: ModeAuto,
		0x2: ModeDry,
		0x3: ModeCool,
		0x4: ModeHeat,
		0x6: ModeFan,
	}
	daikinFans = map[byte]FanSpeed{
		0x3: FanNotch1,
		0x4: FanNotch2,
		0x5: FanNotch3,
		0x6: FanNotch4,
		0x7: FanNotch5,
		0xa: FanAuto,
		0xb: FanSilent,
	}
	daikinSwings = map[byte]Toggle{
		0x0: Disabled,
		0xf: Enabled,
	}
	daikinPowerful = map[byte]Toggle{
		0x00: Disabled,
		0x01: Enabled,
	}
	daikinEcono = map[byte]Toggle{
		0x80: Disabled,
		0x84: Enabled,
	}
)

// DaikinHVAC is a Daikin air conditioner state.
type DaikinHVAC struct {
	Comfort     Toggle
	Mode        *HVACMode
	Power       Power
	OnTimer     Toggle
	OffTimer    Toggle
	Temperature Celsius
	Fan         *FanSpeed
	Swing       *Toggle
	// Timer durations in minutes.
	OnTimerMinutes  uint16
	OffTimerMinutes uint16
	Powerful        *Toggle
	Econo           *Toggle
	Checksum        uint8
}

// Manufacturer returns the Daikin manufacturer name.
func (DaikinHVAC) Manufacturer() string { return "daikin" }

// Fields implements ControlCode.
func (c DaikinHVAC) Fields() map[string]string {
	f := newFieldSet(c.Manufacturer())
	f.set(FieldComfort, c.Comfort)
	setOpt(f, FieldMode, c.Mode)
	f.set(FieldPower, c.Power)
	f.set(FieldTimerOn, c.OnTimer)
	f.set(FieldTimerOff, c.OffTimer)
	f.set(FieldTemperature, c.Temperature)
	setOpt(f, FieldFanSpeed, c.Fan)
	setOpt(f, FieldSwing, c.Swing)
	f.setUint(FieldTimerOnHours, uint(c.OnTimerMinutes/60))
	f.setUint(FieldTimerOffHours, uint(c.OffTimerMinutes/60))
	setOpt(f, FieldPowerful, c.Powerful)
	setOpt(f, FieldEcono, c.Econo)
	f.setUint(FieldChecksum, uint(c.Checksum))
	return f
}

func (DaikinHVAC) controlCode() {}

// DaikinHVACDecoder decodes the three-frame Daikin transmission.
func DaikinHVACDecoder() Decoder {
	return DecoderFunc{DecoderName: "daikin-hvac", Fn: decodeDaikin}
}

func decodeDaikin(frames []ir.DecodedFrame) []ControlCode {
	group := aehaWithHeader(frames, daikinHeader)
	if len(group) < 3 {
		return nil
	}
	first, second, state := group[0], group[1], group[2]
	if len(first) < 8 || len(second) < 8 || len(state) < 19 {
		return nil
	}
	// Any first frame other than the two comfort templates is another model.
	comfort, ok := daikinComfort[[8]byte(first[:8])]
	if !ok {
		return nil
	}
	if !bytes.Equal(second[:8], daikinSecondFrame) {
		return nil
	}
	// Bit 3 of the mode byte is always set.
	if state[5]&0x08 == 0 {
		return nil
	}
	return []ControlCode{DaikinHVAC{
		Comfort:         comfort,
		Mode:            lookup(daikinModes, hi(state[5])),
		OffTimer:        Toggle(state[5]&0x04 != 0),
		OnTimer:         Toggle(state[5]&0x02 != 0),
		Power:           Power(state[5]&0x01 != 0),
		Temperature:     Celsius(state[6] / 2),
		Fan:             lookup(daikinFans, hi(state[8])),
		Swing:           lookup(daikinSwings, lo(state[8])),
		OnTimerMinutes:  uint16(lo(state[11]))<<8 | uint16(state[10]),
		OffTimerMinutes: uint16(state[12])<<4 | uint16(hi(state[11])),
		Powerful:        lookup(daikinPowerful, state[13]),
		Econo:           lookup(daikinEcono, state[16]),
		Checksum:        state[18],
	}}
}
