package device

import "github.com/infrared-remote/ir-go/pkg/ir"

// SonyDevice is the device class addressed by a SIRC frame.
type SonyDevice string

const (
	SonyTV                    SonyDevice = "TV"
	SonyVideoCasetteRecorder1 SonyDevice = "VideoCasetteRecorder1"
	SonyVideoCasetteRecorder2 SonyDevice = "VideoCasetteRecorder2"
	SonyLaserDisk             SonyDevice = "LaserDisk"
	SonySurroundSound         SonyDevice = "SurroundSound"
	SonyCassetteDeckTuner     SonyDevice = "CassetteDeckTuner"
	SonyCDPlayer              SonyDevice = "CDPlayer"
	SonyEqualizer             SonyDevice = "Equalizer"
)

func (d SonyDevice) String() string { return string(d) }

// SonyCommand is a SIRC key.
type SonyCommand string

func (c SonyCommand) String() string { return string(c) }

var sonyDevices = map[uint8]SonyDevice{
	1:  SonyTV,
	2:  SonyVideoCasetteRecorder1,
	3:  SonyVideoCasetteRecorder2,
	6:  SonyLaserDisk,
	12: SonySurroundSound,
	16: SonyCassetteDeckTuner,
	17: SonyCDPlayer,
	18: SonyEqualizer,
}

var sonyCommands = func() map[uint8]SonyCommand {
	m := map[uint8]SonyCommand{
		9:  "DigitKey0",
		16: "ChannelPlus",
		17: "ChannelMinus",
		18: "VolumePlus",
		19: "VolumeMinus",
		20: "Mute",
		21: "Power",
		22: "Reset",
		23: "AudioMode",
		24: "ContrastPlus",
		25: "ContrastMinus",
		26: "ColourPlus",
		27: "ColourMinus",
		30: "BrightnessPlus",
		31: "BrightnessMinus",
		37: "AUXInputSelect",
		38: "BalanceLeft",
		39: "BalanceRight",
		47: "Standby",
	}
	for i := uint8(0); i < 9; i++ {
		m[i] = SonyCommand("DigitKey" + uitoa(uint(i)+1))
	}
	return m
}()

// SonySIRC is a SIRC key press.
type SonySIRC struct {
	Bits        int
	CommandCode uint8
	AddressCode uint8
	// Extended is set for 20-bit frames only.
	Extended *uint8
	Command  *SonyCommand
	Device   *SonyDevice
}

// Manufacturer returns the Sony manufacturer name.
func (SonySIRC) Manufacturer() string { return "sony" }

// Fields implements ControlCode.
func (c SonySIRC) Fields() map[string]string {
	f := newFieldSet(c.Manufacturer())
	setOpt(f, FieldCommand, c.Command)
	setOpt(f, FieldAddress, c.Device)
	if c.Extended != nil {
		f.setUint(FieldExtended, uint(*c.Extended))
	}
	return f
}

func (SonySIRC) controlCode() {}

// SonyDecoder decodes SIRC frames. Every SIRC frame yields a code.
func SonyDecoder() Decoder {
	return DecoderFunc{DecoderName: "sony", Fn: decodeSony}
}

func decodeSony(frames []ir.DecodedFrame) []ControlCode {
	var codes []ControlCode
	for _, f := range frames {
		s, ok := f.(ir.SIRC)
		if !ok {
			continue
		}
		c := SonySIRC{
			CommandCode: s.CommandCode(),
			AddressCode: s.AddressCode(),
		}
		switch v := s.(type) {
		case ir.SIRC12:
			c.Bits = 12
		case ir.SIRC15:
			c.Bits = 15
		case ir.SIRC20:
			c.Bits = 20
			ext := v.ExtendedCode()
			c.Extended = &ext
		}
		c.Command = lookup(sonyCommands, c.CommandCode)
		c.Device = lookup(sonyDevices, c.AddressCode)
		codes = append(codes, c)
	}
	return codes
}
