package irtext

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

// TrailingSpace is the space given to the last mark of an odd-length array.
const TrailingSpace ir.Micros = 35000

// Parse detects the format of s and parses it.
func Parse(s string) ([]ir.Pulse, error) {
	return ParseAs(FormatAuto, s)
}

// ParseAs parses s in the given format. FormatAuto detects it.
func ParseAs(f Format, s string) ([]ir.Pulse, error) {
	if f == FormatAuto {
		var err error
		if f, err = Detect(s); err != nil {
			return nil, err
		}
	}
	var (
		pulses []ir.Pulse
		err    error
	)
	switch f {
	case FormatHex:
		pulses, err = parseHex(s)
	case FormatJSON:
		pulses, err = parseArray(s)
	case FormatPigpio:
		pulses, err = parsePigpio(s)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}
	if len(pulses) == 0 {
		return nil, ErrEmptyInput
	}
	return pulses, nil
}

// parseHex reads 8 hex digits per pulse. The whole input must be consumed.
func parseHex(s string) ([]ir.Pulse, error) {
	var (
		digits  [8]byte
		n       int
		pulses  []ir.Pulse
		lastPos int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, &SyntaxError{Format: FormatHex, Offset: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
		digits[n] = v
		n++
		lastPos = i
		if n == len(digits) {
			mark := ir.Cycles(le16(digits[0:4]))
			space := ir.Cycles(le16(digits[4:8]))
			pulses = append(pulses, ir.FromCarrier(ir.CarrierPulse{Mark: mark, Space: space}))
			n = 0
		}
	}
	if n != 0 {
		return nil, &SyntaxError{Format: FormatHex, Offset: lastPos, Msg: "incomplete pulse"}
	}
	return pulses, nil
}

// le16 reads four hex digits holding a little-endian uint16.
func le16(d []byte) uint16 {
	lo := d[0]<<4 | d[1]
	hi := d[2]<<4 | d[3]
	return uint16(hi)<<8 | uint16(lo)
}

func parseArray(s string) ([]ir.Pulse, error) {
	var values []uint32
	if err := yaml.Unmarshal([]byte(s), &values); err != nil {
		return nil, &SyntaxError{Format: FormatJSON, Offset: -1, Msg: err.Error()}
	}
	return pair(values), nil
}

func parsePigpio(s string) ([]ir.Pulse, error) {
	var named map[string][]uint32
	if err := yaml.Unmarshal([]byte(s), &named); err != nil {
		return nil, &SyntaxError{Format: FormatPigpio, Offset: -1, Msg: err.Error()}
	}
	if len(named) != 1 {
		return nil, &SyntaxError{Format: FormatPigpio, Offset: -1, Msg: fmt.Sprintf("expected one named array, got %d", len(named))}
	}
	for _, values := range named {
		return pair(values), nil
	}
	return nil, nil
}

// pair groups alternating mark and space values into pulses.
func pair(values []uint32) []ir.Pulse {
	pulses := make([]ir.Pulse, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		p := ir.Pulse{Mark: ir.Micros(values[i]), Space: TrailingSpace}
		if i+1 < len(values) {
			p.Space = ir.Micros(values[i+1])
		}
		pulses = append(pulses, p)
	}
	return pulses
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isHexDigit(c byte) bool {
	_, ok := hexValue(c)
	return ok
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
