package device

import "github.com/infrared-remote/ir-go/pkg/ir"

// ToshibaCommand is a Toshiba TV remote key.
type ToshibaCommand string

const (
	ToshibaInputSelect ToshibaCommand = "InputSelect"
	ToshibaMute        ToshibaCommand = "Mute"
	ToshibaPower       ToshibaCommand = "Power"
	ToshibaSoundSelect ToshibaCommand = "SoundSelect"
	ToshibaVolumeUp    ToshibaCommand = "Volume+"
	ToshibaChannelUp   ToshibaCommand = "ChannelUp"
	ToshibaVolumeDown  ToshibaCommand = "Volume-"
	ToshibaChannelDown ToshibaCommand = "ChannelDown"
	ToshibaMedia       ToshibaCommand = "Media"
	ToshibaBlue        ToshibaCommand = "Blue"
	ToshibaRed         ToshibaCommand = "Red"
	ToshibaGreen       ToshibaCommand = "Green"
	ToshibaYellow      ToshibaCommand = "Yellow"
)

func (c ToshibaCommand) String() string { return string(c) }

// ToshibaAddress is the device class selected by the NEC custom code.
type ToshibaAddress string

// ToshibaAddressTV addresses a television.
const ToshibaAddressTV ToshibaAddress = "tv"

func (a ToshibaAddress) String() string { return string(a) }

var toshibaAddresses = map[[2]byte]ToshibaAddress{
	{0x40, 0xbf}: ToshibaAddressTV,
}

// Commands are sent as the code followed by its complement.
var toshibaCommands = func() map[[2]byte]ToshibaCommand {
	m := map[[2]byte]ToshibaCommand{}
	add := func(code byte, c ToshibaCommand) { m[[2]byte{code, ^code}] = c }
	add(0x0f, ToshibaInputSelect)
	add(0x10, ToshibaMute)
	add(0x12, ToshibaPower)
	add(0x13, ToshibaSoundSelect)
	add(0x1a, ToshibaVolumeUp)
	add(0x1b, ToshibaChannelUp)
	add(0x1e, ToshibaVolumeDown)
	add(0x1f, ToshibaChannelDown)
	for i := byte(0); i < 12; i++ {
		add(0x61+i, ToshibaCommand("DigitKey"+uitoa(uint(i)+1)))
	}
	add(0x6d, ToshibaMedia)
	add(0x73, ToshibaBlue)
	add(0x74, ToshibaRed)
	add(0x75, ToshibaGreen)
	add(0x76, ToshibaYellow)
	return m
}()

// ToshibaTV is a Toshiba television key press.
type ToshibaTV struct {
	CustomCode [2]byte
	DataCode   [2]byte
	Address    *ToshibaAddress
	Command    *ToshibaCommand
}

// Manufacturer returns the Toshiba manufacturer name.
func (ToshibaTV) Manufacturer() string { return "toshiba" }

// Fields implements ControlCode.
func (c ToshibaTV) Fields() map[string]string {
	f := newFieldSet(c.Manufacturer())
	setOpt(f, FieldAddress, c.Address)
	setOpt(f, FieldCommand, c.Command)
	return f
}

func (ToshibaTV) controlCode() {}

// IsTV reports whether the custom code addresses a television.
func (c ToshibaTV) IsTV() bool { return c.Address != nil }

// ToshibaTVDecoder decodes NEC frames from Toshiba TV remotes. Every NEC
// frame yields a code; address and command are set when known.
func ToshibaTVDecoder() Decoder {
	return DecoderFunc{DecoderName: "toshiba-tv", Fn: decodeToshibaTV}
}

func decodeToshibaTV(frames []ir.DecodedFrame) []ControlCode {
	var codes []ControlCode
	for _, f := range frames {
		nec, ok := f.(ir.NEC)
		if !ok {
			continue
		}
		custom, data := nec.Custom(), nec.Data()
		codes = append(codes, ToshibaTV{
			CustomCode: custom,
			DataCode:   data,
			Address:    lookup(toshibaAddresses, custom),
			Command:    lookup(toshibaCommands, data),
		})
	}
	return codes
}
