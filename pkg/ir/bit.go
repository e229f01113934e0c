package ir

import (
	"fmt"
	"slices"
	"strings"
)

// Bit is one demodulated binary value.
type Bit uint8

const (
	// Lo is binary 0.
	Lo Bit = 0
	// Hi is binary 1.
	Hi Bit = 1
)

// String returns "0" or "1".
func (b Bit) String() string {
	if b == Hi {
		return "1"
	}
	return "0"
}

// Bits is an ordered bit sequence in transmission order.
type Bits []Bit

// String renders the sequence as a string of '0' and '1'.
func (bs Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(bs))
	for _, b := range bs {
		if b == Hi {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBits parses a string of '0' and '1'. Spaces and underscores are
// accepted as visual separators and ignored.
func ParseBits(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits = append(bits, Lo)
		case '1':
			bits = append(bits, Hi)
		case ' ', '_', '\t':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidBitString, r, i)
		}
	}
	return bits, nil
}

// FoldLSBFirst folds bits into an integer, treating the first bit as the
// least significant. Bits beyond the 64th are ignored.
func FoldLSBFirst(bits []Bit) uint64 {
	var v uint64
	for i, b := range bits {
		if i >= 64 {
			break
		}
		if b == Hi {
			v |= 1 << i
		}
	}
	return v
}

// FoldByte folds up to eight bits LSB-first into a byte.
func FoldByte(bits []Bit) byte {
	return byte(FoldLSBFirst(bits) & 0xff)
}

// Octets groups bits into 8-bit groups. The last group may be shorter.
// The returned groups do not alias bits.
func Octets(bits []Bit) []Bits {
	out := make([]Bits, 0, (len(bits)+7)/8)
	for i := 0; i < len(bits); i += 8 {
		end := min(i+8, len(bits))
		out = append(out, slices.Clone(Bits(bits[i:end])))
	}
	return out
}

// Bytes folds each group LSB-first.
func Bytes(octets []Bits) []byte {
	out := make([]byte, len(octets))
	for i, o := range octets {
		out[i] = FoldByte(o)
	}
	return out
}
